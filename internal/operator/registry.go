package operator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Placeholders every dial template must carry. Substitution happens at dial
// time; validation happens here so a broken template can never reach a dial.
const (
	PlaceholderRecipient = "{recipient}"
	PlaceholderAmount    = "{amount}"
	PlaceholderSecret    = "{secret}"
)

// ErrUnknownOperator indicates a lookup for an operator id the registry does not hold.
var ErrUnknownOperator = errors.New("unknown operator")

// Profile describes a mobile-money carrier. Profiles are immutable once loaded.
type Profile struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	DisplayName  string `json:"display_name"`
	BrandColor   string `json:"brand_color"`
	DialTemplate string `json:"dial_template"`
}

// Registry is the static table of known carriers, loaded once at process start.
type Registry struct {
	profiles map[string]Profile
	order    []string
}

// Defaults returns the built-in carrier set.
func Defaults() []Profile {
	return []Profile{
		{ID: "orange", Name: "OrangeMoney", DisplayName: "Orange Money", BrandColor: "#FF6600", DialTemplate: "*144*1*{recipient}*{amount}*{secret}#"},
		{ID: "move", Name: "MoveMoney", DisplayName: "Move Money", BrandColor: "#00B4D8", DialTemplate: "*123*2*{recipient}*{amount}*{secret}#"},
		{ID: "telesale", Name: "TelesaleMoney", DisplayName: "Télésale Money", BrandColor: "#E63946", DialTemplate: "*222*3*{recipient}*{amount}*{secret}#"},
	}
}

// NewRegistry validates the profile list and builds an immutable registry.
func NewRegistry(profiles []Profile) (*Registry, error) {
	if len(profiles) == 0 {
		return nil, fmt.Errorf("operator registry requires at least one profile")
	}

	r := &Registry{profiles: make(map[string]Profile, len(profiles))}
	for _, p := range profiles {
		if strings.TrimSpace(p.ID) == "" {
			return nil, fmt.Errorf("operator profile missing id")
		}
		if _, exists := r.profiles[p.ID]; exists {
			return nil, fmt.Errorf("duplicate operator id %q", p.ID)
		}
		if err := validateTemplate(p); err != nil {
			return nil, err
		}
		r.profiles[p.ID] = p
		r.order = append(r.order, p.ID)
	}
	return r, nil
}

// LoadFile reads operator profiles from a JSON file, falling back to the
// built-in defaults when path is empty.
func LoadFile(path string) (*Registry, error) {
	if path == "" {
		return NewRegistry(Defaults())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read operators file: %w", err)
	}
	var profiles []Profile
	if err := json.Unmarshal(raw, &profiles); err != nil {
		return nil, fmt.Errorf("parse operators file: %w", err)
	}
	return NewRegistry(profiles)
}

// Get returns the profile for the given operator id.
func (r *Registry) Get(id string) (Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return Profile{}, fmt.Errorf("%w: %s", ErrUnknownOperator, id)
	}
	return p, nil
}

// List returns all profiles in load order.
func (r *Registry) List() []Profile {
	out := make([]Profile, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.profiles[id])
	}
	return out
}

func validateTemplate(p Profile) error {
	for _, ph := range []string{PlaceholderRecipient, PlaceholderAmount, PlaceholderSecret} {
		if !strings.Contains(p.DialTemplate, ph) {
			return fmt.Errorf("operator %s: dial template missing %s placeholder", p.ID, ph)
		}
	}
	return nil
}
