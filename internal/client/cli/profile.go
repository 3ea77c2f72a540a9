package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kpfoody/foody/internal/client/models"
	"github.com/kpfoody/foody/internal/common"
)

// editProfile shows the current profile and prompts for a new name and bio.
// Empty answers keep the current values.
func (a *App) editProfile(ctx context.Context) {
	st := a.session.State()
	if st.User == nil {
		fmt.Println("Sign in first")
		return
	}

	fmt.Printf("Name: %s\nBio:  %s\n", st.User.Name, st.User.Bio)

	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return
	}
	bio, err := GetMultiline(a.reader, "New bio (empty to keep)", os.Stdout)
	if err != nil {
		return
	}

	var patch models.UserPatch
	if name != "" {
		patch.Name = &name
	}
	if bio != "" {
		patch.Bio = &bio
	}
	if patch.Name == nil && patch.Bio == nil {
		fmt.Println("Nothing to change")
		return
	}

	if err := a.session.UpdateUser(ctx, patch); err != nil {
		if errors.Is(err, common.ErrValidation) {
			fmt.Println("Rejected:", err)
			return
		}
		fmt.Println("Update failed:", err)
		return
	}
	fmt.Println("Profile saved")
}
