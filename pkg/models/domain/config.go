package domain

import "fmt"

// SiteProfile is one workplace entry of the profiles file.
type SiteProfile struct {
	Name        string
	Database    string
	Description string
}

func (p SiteProfile) String() string {
	return fmt.Sprintf("%s:%s", p.Name, p.Database)
}
