package domain

import "time"

type SubmissionStatus string

const (
	StatusPending  SubmissionStatus = "pending"
	StatusApproved SubmissionStatus = "approved"
	StatusRejected SubmissionStatus = "rejected"
)

func ParseStatus(s string) (SubmissionStatus, bool) {
	switch st := SubmissionStatus(s); st {
	case StatusPending, StatusApproved, StatusRejected:
		return st, true
	}
	return "", false
}

// Submission is a user-submitted listing awaiting moderation.
type Submission struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	PropertyType    PropertyType     `json:"property_type"`
	ListingType     ListingType      `json:"listing_type"`
	Price           int64            `json:"price"`
	PricePeriod     *PricePeriod     `json:"price_period"`
	State           string           `json:"state"`
	City            string           `json:"city"`
	Locality        string           `json:"locality"`
	Address         string           `json:"address"`
	Bedrooms        int              `json:"bedrooms"`
	Bathrooms       int              `json:"bathrooms"`
	Toilets         int              `json:"toilets"`
	Size            float64          `json:"size"`
	Description     string           `json:"description"`
	IsServiced      bool             `json:"is_serviced"`
	IsFurnished     bool             `json:"is_furnished"`
	Features        []string         `json:"features"`
	AgentName       string           `json:"agent_name"`
	AgentPhone      string           `json:"agent_phone"`
	AgentEmail      *string          `json:"agent_email"`
	AgentCompany    *string          `json:"agent_company"`
	Status          SubmissionStatus `json:"status"`
	RejectionReason *string          `json:"rejection_reason"`
	CreatedAt       time.Time        `json:"created_at"`
	ReviewedAt      *time.Time       `json:"reviewed_at"`
}

// StatusUpdate is the moderation decision applied to a submission.
type StatusUpdate struct {
	Status          SubmissionStatus
	RejectionReason *string
	ReviewedAt      time.Time
}

// AsProperty maps an approved submission onto the listing shape served to
// end users. Submissions carry no size unit; sqm is assumed.
func (s Submission) AsProperty() Property {
	p := Property{
		ID:           "sub-" + s.ID,
		Title:        s.Title,
		Type:         s.ListingType,
		PropertyType: s.PropertyType,
		Price:        s.Price,
		PriceUnit:    s.PricePeriod,
		Location:     Location{State: s.State, City: s.City, Area: s.Locality},
		Size:         s.Size,
		SizeUnit:     UnitSqm,
		Features:     append([]string(nil), s.Features...),
		Description:  s.Description,
		Agent: Agent{
			Name:    s.AgentName,
			Phone:   s.AgentPhone,
			Email:   s.AgentEmail,
			Company: s.AgentCompany,
		},
		IsServiced:  s.IsServiced,
		IsFurnished: s.IsFurnished,
		CreatedAt:   s.CreatedAt,
	}
	if s.Address != "" {
		addr := s.Address
		p.Location.Address = &addr
	}
	if s.PropertyType != TypeLand {
		beds, baths, toilets := s.Bedrooms, s.Bathrooms, s.Toilets
		p.Bedrooms, p.Bathrooms, p.Toilets = &beds, &baths, &toilets
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	return p
}
