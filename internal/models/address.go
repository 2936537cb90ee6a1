package models

import "strings"

type Address struct {
	AddressLine1 string `json:"addressLine1" binding:"required"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city" binding:"required"`
	State        string `json:"state" binding:"required"`
	Zip          string `json:"zip" binding:"required"`
	Country      string `json:"country,omitempty"`
}

// Lines renders the address the way the order detail dialog prints it.
func (a Address) Lines() []string {
	var out []string
	if a.AddressLine1 != "" {
		out = append(out, a.AddressLine1)
	}
	if a.AddressLine2 != "" {
		out = append(out, a.AddressLine2)
	}
	var locality []string
	for _, s := range []string{a.City, a.State, a.Zip} {
		if s != "" {
			locality = append(locality, s)
		}
	}
	if len(locality) > 0 {
		out = append(out, strings.Join(locality, ", "))
	}
	if a.Country != "" {
		out = append(out, a.Country)
	}
	return out
}
