package app

import (
	"crypto/sha1"
	"encoding/hex"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"goodhouse/internal/domain"
)

const (
	minBlockLen      = 50
	maxParsed        = 12
	maxTitleLen      = 100
	maxDescLen       = 200
	defaultSize      = 100
	defaultScrapeImg = "https://images.unsplash.com/photo-1600596542815-ffad4c1539a9?w=800&q=80"
)

var (
	headingLine = regexp.MustCompile(`^#{2,3}\s`)

	hasPriceRe   = regexp.MustCompile(`(?i)₦[\d,]+(?:\.\d{2})?|NGN\s*[\d,]+`)
	priceRe      = regexp.MustCompile(`(?i)₦\s?([\d,]+)|NGN\s*([\d,]+)`)
	hasBedroomRe = regexp.MustCompile(`(?i)(\d+)\s*(?:bed(?:room)?s?|br)`)
	bedroomRe    = regexp.MustCompile(`(?i)(\d+)\s*(?:bed|br)`)
	bathroomRe   = regexp.MustCompile(`(?i)(\d+)\s*(?:bath|ba)`)
	sizeRe       = regexp.MustCompile(`(?i)(\d+(?:,\d{3})*)\s*(?:sqm|sq)`)
	titleRe      = regexp.MustCompile(`^(?:#+\s*)?([^\n]+)`)

	houseRe      = regexp.MustCompile(`(?i)duplex|detached|bungalow|mansion`)
	landRe       = regexp.MustCompile(`(?i)\b(?:land|plots?|acres?)\b`)
	commercialRe = regexp.MustCompile(`(?i)office|shop|warehouse|commercial`)
	rentRe       = regexp.MustCompile(`(?i)rent|lease|per\s*(?:year|annum|month)`)
	monthlyRe    = regexp.MustCompile(`(?i)per\s*month|/\s*month|monthly`)
)

type locationKeyword struct {
	keyword     string
	city, state string
}

// Checked in order; the first keyword found in a block wins.
var locationKeywords = []locationKeyword{
	{"Lekki", "Lagos", "Lagos"},
	{"Victoria Island", "Lagos", "Lagos"},
	{"Ikoyi", "Lagos", "Lagos"},
	{"Ajah", "Lagos", "Lagos"},
	{"Banana Island", "Lagos", "Lagos"},
	{"Ikeja", "Lagos", "Lagos"},
	{"Yaba", "Lagos", "Lagos"},
	{"Marina", "Lagos", "Lagos"},
	{"Surulere", "Lagos", "Lagos"},
	{"Gbagada", "Lagos", "Lagos"},
	{"Abuja", "Abuja", "FCT"},
	{"Port Harcourt", "Port Harcourt", "Rivers"},
	{"Ibadan", "Ibadan", "Oyo"},
	{"Kano", "Kano", "Kano"},
	{"Kaduna", "Kaduna", "Kaduna"},
}

// ParseListings extracts listing records from scraped page markdown.
// Parsing is best effort: blocks that do not look like listings, or that
// carry no usable price, are skipped silently.
func ParseListings(markdown, sourceURL string, scrapedAt time.Time) []domain.Property {
	out := make([]domain.Property, 0, maxParsed)
	seen := map[string]bool{}
	agent := domain.Agent{Name: sourceHost(sourceURL)}

	for _, block := range splitBlocks(markdown) {
		if len(out) == maxParsed {
			break
		}
		if utf8.RuneCountInString(block) < minBlockLen {
			continue
		}
		lower := strings.ToLower(block)
		kw, hasLocation := findLocation(lower)
		if !hasPriceRe.MatchString(block) && !(hasBedroomRe.MatchString(block) && hasLocation) {
			continue
		}

		price := parsePrice(block)
		if price <= 0 {
			continue
		}

		loc := domain.Location{State: "Lagos", City: "Lagos", Area: "Unknown"}
		if hasLocation {
			loc = domain.Location{State: kw.state, City: kw.city, Area: kw.keyword}
		}

		title := ""
		if m := titleRe.FindStringSubmatch(block); m != nil {
			title = strings.TrimSpace(truncateRunes(m[1], maxTitleLen))
		}
		if title == "" {
			title = "Property in " + loc.Area
		}

		p := domain.Property{
			Title:        title,
			Type:         domain.ListingSale,
			PropertyType: classify(block),
			Price:        price,
			Location:     loc,
			Bedrooms:     firstInt(bedroomRe, block),
			Bathrooms:    firstInt(bathroomRe, block),
			Size:         defaultSize,
			SizeUnit:     domain.UnitSqm,
			Image:        defaultScrapeImg,
			Features:     []string{},
			Description:  strings.TrimSpace(truncateRunes(block, maxDescLen)),
			Agent:        agent,
			SourceURL:    sourceURL,
			CreatedAt:    scrapedAt,
		}
		if rentRe.MatchString(block) {
			period := domain.PerYear
			if monthlyRe.MatchString(block) {
				period = domain.PerMonth
			}
			p.Type = domain.ListingRent
			p.PriceUnit = &period
		}
		if m := sizeRe.FindStringSubmatch(block); m != nil {
			if n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64); err == nil && n > 0 {
				p.Size = n
			}
		}

		p.ID = scrapedID(sourceURL, p.Title, p.Description, p.Price)
		if seen[p.ID] {
			continue
		}
		seen[p.ID] = true
		out = append(out, p)
	}
	return out
}

// splitBlocks cuts markdown at level 2/3 headings and at blank lines that
// are followed by a line starting with an uppercase letter.
func splitBlocks(md string) []string {
	md = strings.ReplaceAll(md, "\r\n", "\n")
	var blocks []string
	var cur []string
	flush := func() {
		if b := strings.TrimSpace(strings.Join(cur, "\n")); b != "" {
			blocks = append(blocks, b)
		}
		cur = cur[:0]
	}

	prevBlank := false
	for _, ln := range strings.Split(md, "\n") {
		upperStart := ln != "" && ln[0] >= 'A' && ln[0] <= 'Z'
		if headingLine.MatchString(ln) || (prevBlank && upperStart) {
			flush()
		}
		cur = append(cur, ln)
		prevBlank = ln == ""
	}
	flush()
	return blocks
}

func findLocation(lower string) (locationKeyword, bool) {
	for _, kw := range locationKeywords {
		if strings.Contains(lower, strings.ToLower(kw.keyword)) {
			return kw, true
		}
	}
	return locationKeyword{}, false
}

func classify(block string) domain.PropertyType {
	switch {
	case houseRe.MatchString(block):
		return domain.TypeHouse
	case landRe.MatchString(block):
		return domain.TypeLand
	case commercialRe.MatchString(block):
		return domain.TypeCommercial
	}
	return domain.TypeApartment
}

func parsePrice(block string) int64 {
	m := priceRe.FindStringSubmatch(block)
	if m == nil {
		return 0
	}
	digits := m[1]
	if digits == "" {
		digits = m[2]
	}
	n, err := strconv.ParseInt(strings.ReplaceAll(digits, ",", ""), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

func firstInt(re *regexp.Regexp, s string) *int {
	m := re.FindStringSubmatch(s)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// scrapedID is stable across runs so re-scrapes upsert instead of
// duplicating.
// scrapedID is stable across runs. Blocks sharing a generic title and price
// still get distinct ids through their description.
func scrapedID(source, title, desc string, price int64) string {
	sum := sha1.Sum([]byte(source + "|" + title + "|" + desc + "|" + strconv.FormatInt(price, 10)))
	return "scraped-" + hex.EncodeToString(sum[:])[:12]
}

func sourceHost(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return strings.TrimPrefix(u.Host, "www.")
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
