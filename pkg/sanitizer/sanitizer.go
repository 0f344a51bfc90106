package sanitizer

import (
	"net/url"
	"strings"
	"stayquest/pkg/model"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// SanitizeImageURL lowercases the scheme and host of an absolute URL. Anything
// that does not parse as one is only trimmed, so validation can reject it.
func SanitizeImageURL(input string) string {
	p := Pipeline{
		strings.TrimSpace,
		func(s string) string {
			u, err := url.Parse(s)
			if err != nil || u.Host == "" {
				return s
			}
			u.Scheme = strings.ToLower(u.Scheme)
			u.Host = strings.ToLower(u.Host)
			return u.String()
		},
	}
	return p.Apply(input)
}

// SanitizeHotelRequest normalizes every field of req in place.
func SanitizeHotelRequest(req *model.CreateHotelRequest) {
	if req == nil {
		return
	}
	req.Name = NormalizeName(req.Name)
	req.Location = NormalizeLocation(req.Location)
	req.Image = SanitizeImageURL(req.Image)
	req.Description = NormalizeDescription(req.Description)
	if req.Amenities != nil {
		req.Amenities = NormalizeAmenities(req.Amenities)
	}
}
