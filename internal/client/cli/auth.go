package cli

import (
	"context"
	"errors"
	"os"
	"strconv"
	"strings"

	"github.com/acemeet/aceletters/internal/client/filter"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/common"
)

// getSimpleText, getPassword, getMultiline and confirm are indirections
// used to facilitate testing. They point to interactive input helpers and
// can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getMultiline = GetMultiline
var confirm = Confirm

// Signup interactively collects a profile draft and a password, creates
// the account and logs the new user in. The password byte slice is wiped
// before returning.
func (a *App) Signup(ctx context.Context) error {
	draft, err := a.promptDraft(models.ProfileDraft{})
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Signup(ctx, draft, password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			printlnFn("Invalid profile:", err.Error())
			return nil
		}
		a.log.Error(ctx, "signup failed", "error", err)
		printlnFn("Signup failed:", err.Error())
		return err
	}

	a.arm(sess)
	printlnFn("Welcome,", a.status())
	return nil
}

// Login prompts for credentials and authenticates. On success the
// per-user services are armed and the session is persisted so the next
// run resumes it.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	sess, err := a.auth.Login(ctx, username, password)
	if err != nil {
		a.log.Error(ctx, "login failed", "error", err)
		if errors.Is(err, common.ErrorUnauthorized) {
			printlnFn("Wrong username or password")
		} else {
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	a.arm(sess)
	printlnFn("Welcome,", a.status())
	return nil
}

// Logout clears the persisted session and the in-memory state.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.log.Error(ctx, "logout failed", "error", err)
		return err
	}
	a.disarm()
	printlnFn("Logged out")
	return nil
}

// Whoami prints the current identity, or a hint when not logged in.
func (a *App) Whoami(ctx context.Context) error {
	if !a.isLoggedIn() {
		printlnFn("Not logged in. Use 'login' or 'signup'.")
		return nil
	}
	printlnFn(a.status(), "("+a.session.UserID+")")
	return nil
}

// promptDraft collects the profile fields interactively, using base for
// defaults so the same prompt serves both signup and edit.
func (a *App) promptDraft(base models.ProfileDraft) (models.ProfileDraft, error) {
	draft := base

	username, err := getSimpleText(a.reader, promptWithDefault("Username", base.Username), os.Stdout)
	if err != nil {
		return draft, err
	}
	if username != "" {
		draft.Username = username
	}

	name, err := getSimpleText(a.reader, promptWithDefault("Name", base.Name), os.Stdout)
	if err != nil {
		return draft, err
	}
	if name != "" {
		draft.Name = name
	}

	ageText, err := getSimpleText(a.reader, promptWithDefault("Age", strconv.Itoa(base.Age)), os.Stdout)
	if err != nil {
		return draft, err
	}
	if ageText != "" {
		age, err := strconv.Atoi(ageText)
		if err != nil {
			printlnFn("Age must be a number")
			return draft, err
		}
		draft.Age = age
	}

	city, err := a.promptChoice("City", filter.CityOptions, base.City)
	if err != nil {
		return draft, err
	}
	draft.City = city

	orientation, err := a.promptChoice("Orientation", filter.OrientationOptions, base.Orientation)
	if err != nil {
		return draft, err
	}
	draft.Orientation = orientation

	lookingFor, err := a.promptChoice("Looking for", filter.LookingForOptions, base.LookingFor)
	if err != nil {
		return draft, err
	}
	draft.LookingFor = lookingFor

	gender, err := a.promptChoice("Gender", filter.GenderOptions, base.Gender)
	if err != nil {
		return draft, err
	}
	draft.Gender = gender

	info, err := getMultiline(a.reader, "About you", os.Stdout)
	if err != nil {
		return draft, err
	}
	if info != "" {
		draft.Info = info
	}

	contact, err := getSimpleText(a.reader, promptWithDefault("Contact (how to reach you)", base.Contact), os.Stdout)
	if err != nil {
		return draft, err
	}
	if contact != "" {
		draft.Contact = contact
	}

	return draft, nil
}

// promptChoice shows the allowed codes for a categorical field and reads
// one. An empty line keeps the current value.
func (a *App) promptChoice(label string, options []filter.Option, current string) (string, error) {
	printlnFn(label + " options: " + strings.Join(filter.Values(options), ", "))
	v, err := getSimpleText(a.reader, promptWithDefault(label, current), os.Stdout)
	if err != nil {
		return "", err
	}
	if v == "" {
		return current, nil
	}
	return v, nil
}

func promptWithDefault(label, current string) string {
	if current == "" || current == "0" {
		return label
	}
	return label + " [" + current + "]"
}
