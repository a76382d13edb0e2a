package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/acemeet/aceletters/internal/client/filter"
	"github.com/acemeet/aceletters/internal/client/models"
)

// browseLimit is how many profiles one fetch pulls from the directory.
const browseLimit = 200

func (a *App) requireLogin() bool {
	if !a.isLoggedIn() {
		printlnFn("Please login first")
		return false
	}
	return true
}

// showListing renders profiles as a numbered list and remembers it so
// like/write can address entries by number.
func (a *App) showListing(profiles []models.Profile) {
	a.listing = profiles
	if len(profiles) == 0 {
		printlnFn("No profiles found")
		return
	}
	for i, p := range profiles {
		liked := " "
		if a.favorites != nil && a.favorites.IsLiked(p.ID) {
			liked = "*"
		}
		age := "?"
		if p.Age.Valid {
			age = strconv.Itoa(p.Age.Value)
		}
		printlnFn(fmt.Sprintf("%3d %s %-20s %3s  %s", i+1, liked, p.DisplayName(), age, filter.Label(filter.CityOptions, p.City)))
	}
	printlnFn(fmt.Sprintf("%d profile(s). '*' marks your likes.", len(profiles)))
}

// Browse fetches the directory and shows it with the current filter
// applied. The viewer's own profile is always excluded.
func (a *App) Browse(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	profiles, err := a.dir.FetchAll(ctx, browseLimit)
	if err != nil {
		a.log.Error(ctx, "browse failed", "error", err)
		printlnFn("Could not load profiles:", err.Error())
		return err
	}

	if err := a.favorites.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh likes", "error", err)
	}

	a.showListing(filter.Apply(profiles, a.spec, a.viewerID()))
	return nil
}

// Saved shows the profiles the viewer has liked.
func (a *App) Saved(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	profiles, err := a.dir.FetchSaved(ctx, a.viewerID())
	if err != nil {
		a.log.Error(ctx, "saved list failed", "error", err)
		printlnFn("Could not load saved profiles:", err.Error())
		return err
	}

	if err := a.favorites.Refresh(ctx); err != nil {
		a.log.Warn(ctx, "could not refresh likes", "error", err)
	}

	a.showListing(profiles)
	return nil
}

// Search runs a free text search over the directory on top of the
// current filter.
func (a *App) Search(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}

	profiles, err := a.dir.FetchAll(ctx, browseLimit)
	if err != nil {
		a.log.Error(ctx, "search failed", "error", err)
		printlnFn("Could not load profiles:", err.Error())
		return err
	}

	spec := a.spec
	spec.Query = strings.Join(args, " ")
	a.showListing(filter.Apply(profiles, spec, a.viewerID()))
	return nil
}

// Random picks one profile at random from the filtered directory.
func (a *App) Random(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	profiles, err := a.dir.FetchAll(ctx, browseLimit)
	if err != nil {
		printlnFn("Could not load profiles:", err.Error())
		return err
	}

	p, ok := filter.Pick(filter.Apply(profiles, a.spec, a.viewerID()), a.rng)
	if !ok {
		printlnFn("No profiles to pick from")
		return nil
	}
	a.showProfile(p)
	a.listing = []models.Profile{p}
	return nil
}

// Filter interactively edits the filter spec applied by browse/search.
// An empty answer leaves a dimension unrestricted.
func (a *App) Filter(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}

	var spec filter.Spec

	cities, err := a.promptMulti("Cities", filter.CityOptions)
	if err != nil {
		return err
	}
	spec.Cities = cities

	orientations, err := a.promptMulti("Orientations", filter.OrientationOptions)
	if err != nil {
		return err
	}
	spec.Orientations = orientations

	lookingFor, err := a.promptMulti("Looking for", filter.LookingForOptions)
	if err != nil {
		return err
	}
	spec.LookingFor = lookingFor

	genders, err := a.promptMulti("Genders", filter.GenderOptions)
	if err != nil {
		return err
	}
	spec.Genders = genders

	ageMin, err := a.promptAge("Minimum age (empty for none)")
	if err != nil {
		return err
	}
	spec.AgeMin = ageMin

	ageMax, err := a.promptAge("Maximum age (empty for none)")
	if err != nil {
		return err
	}
	spec.AgeMax = ageMax

	a.spec = spec
	if spec.IsZero() {
		printlnFn("Filter cleared")
	} else {
		printlnFn("Filter set; 'browse' to apply")
	}
	return nil
}

// promptMulti reads a comma-separated subset of the option codes. Unknown
// codes are reported and dropped.
func (a *App) promptMulti(label string, options []filter.Option) (filter.Set, error) {
	printlnFn(label + " options: " + strings.Join(filter.Values(options), ", "))
	line, err := getSimpleText(a.reader, label+" (comma-separated, empty for any)", os.Stdout)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}

	known := filter.NewSet(filter.Values(options)...)
	var picked []string
	for _, v := range strings.Split(line, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if !known.Has(v) {
			printlnFn("Skipping unknown value:", v)
			continue
		}
		picked = append(picked, v)
	}
	if len(picked) == 0 {
		return nil, nil
	}
	return filter.NewSet(picked...), nil
}

func (a *App) promptAge(label string) (*int, error) {
	line, err := getSimpleText(a.reader, label, os.Stdout)
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, nil
	}
	age, err := strconv.Atoi(line)
	if err != nil {
		printlnFn("Not a number, ignoring:", line)
		return nil, nil
	}
	return &age, nil
}
