package cv

import (
	"embed"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/mwijayanto/autoapply/internal/classify"
)

//go:embed templates/*.yaml
var templateFiles embed.FS

// templateCategories are the categories that carry a CV template.
// CategoryNone has none: rejected postings never reach document generation.
var templateCategories = []classify.Category{
	classify.CategoryBackend,
	classify.CategoryFrontend,
	classify.CategoryFullstack,
}

// LoadProfile parses the embedded template for one category.
func LoadProfile(category classify.Category) (*Profile, error) {
	data, err := templateFiles.ReadFile(fmt.Sprintf("templates/%s.yaml", category))
	if err != nil {
		return nil, &TemplateError{Category: string(category), Message: "template not found", Cause: err}
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, &TemplateError{Category: string(category), Message: "failed to parse template", Cause: err}
	}

	if profile.PersonalInfo.Name == "" {
		return nil, &TemplateError{Category: string(category), Message: "template has no personal_info.name"}
	}

	return &profile, nil
}

// PreloadProfiles parses every category template up front so that a broken
// template surfaces at startup instead of mid-batch.
func PreloadProfiles() (map[classify.Category]*Profile, error) {
	loaded := make([]*Profile, len(templateCategories))

	var g errgroup.Group
	for i, category := range templateCategories {
		i, category := i, category
		g.Go(func() error {
			profile, err := LoadProfile(category)
			if err != nil {
				return err
			}
			loaded[i] = profile
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	profiles := make(map[classify.Category]*Profile, len(templateCategories))
	for i, category := range templateCategories {
		profiles[category] = loaded[i]
	}
	return profiles, nil
}
