package httpserver

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"goodhouse/internal/domain"
)

// parseListingsQuery reads browse criteria from the query string. Absent
// parameters leave the criterion unset.
func parseListingsQuery(q url.Values) (domain.ListingsQuery, error) {
	var out domain.ListingsQuery
	f := &out.Filter

	f.Category = strings.ToLower(strings.TrimSpace(q.Get("category")))
	if f.Category != "" && f.Category != "all" && !domain.ValidPropertyType(f.Category) {
		return out, invalid("category", f.Category)
	}
	if t := strings.ToLower(strings.TrimSpace(q.Get("type"))); t != "" && t != "all" {
		if !domain.ValidListingType(t) {
			return out, invalid("type", t)
		}
		f.ListingType = domain.ListingType(t)
	}
	f.State = q.Get("state")
	f.City = q.Get("city")
	f.Locality = q.Get("locality")

	var err error
	if f.MinPrice, err = optInt64(q, "minPrice"); err != nil {
		return out, err
	}
	if f.MaxPrice, err = optInt64(q, "maxPrice"); err != nil {
		return out, err
	}
	if f.MinBedrooms, err = optInt(q, "beds"); err != nil {
		return out, err
	}
	if f.MinBathrooms, err = optInt(q, "baths"); err != nil {
		return out, err
	}
	if f.MinSize, err = optFloat(q, "minSize"); err != nil {
		return out, err
	}
	if f.MaxSize, err = optFloat(q, "maxSize"); err != nil {
		return out, err
	}
	for _, v := range q["features"] {
		for _, tag := range strings.Split(v, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				f.Features = append(f.Features, tag)
			}
		}
	}
	if f.Verified, err = optBool(q, "verified"); err != nil {
		return out, err
	}
	if f.Serviced, err = optBool(q, "serviced"); err != nil {
		return out, err
	}
	if f.Furnished, err = optBool(q, "furnished"); err != nil {
		return out, err
	}
	if f.Featured, err = optBool(q, "featured"); err != nil {
		return out, err
	}

	if l, err := optInt(q, "limit"); err != nil {
		return out, err
	} else if l != nil {
		out.Limit = *l
	}
	if o, err := optInt(q, "offset"); err != nil {
		return out, err
	} else if o != nil {
		out.Offset = *o
	}
	return out, nil
}

func invalid(name, v string) error {
	return fmt.Errorf("%w: invalid %s %q", domain.ErrValidation, name, v)
}

func optInt64(q url.Values, name string) (*int64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n < 0 {
		return nil, invalid(name, s)
	}
	return &n, nil
}

func optInt(q url.Values, name string) (*int, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil, invalid(name, s)
	}
	return &n, nil
}

func optFloat(q url.Values, name string) (*float64, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || n < 0 || math.IsNaN(n) || math.IsInf(n, 0) {
		return nil, invalid(name, s)
	}
	return &n, nil
}

func optBool(q url.Values, name string) (*bool, error) {
	s := strings.TrimSpace(q.Get(name))
	if s == "" {
		return nil, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, invalid(name, s)
	}
	return &b, nil
}
