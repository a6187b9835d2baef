package config

import (
	"context"
	"fmt"

	"github.com/de-tools/isg-atlas/pkg/models/domain"
	"gopkg.in/ini.v1"
)

// Registry lists the workplace profiles of an INI file, one section per site:
//
//	[istanbul-plant]
//	database = /var/lib/isg/istanbul.db
//	description = Istanbul production site
type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetProfile(ctx context.Context, profile string) (*domain.SiteProfile, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetProfile(_ context.Context, profile string) (*domain.SiteProfile, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	database := section.Key("database").String()
	if database == "" {
		return nil, fmt.Errorf("profile %s has no database", profile)
	}

	return &domain.SiteProfile{
		Name:        profile,
		Database:    database,
		Description: section.Key("description").String(),
	}, nil
}
