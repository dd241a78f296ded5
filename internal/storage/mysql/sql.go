package mysql

// Upsert keyed on (source, source_listing_id); a re-scrape refreshes the
// indexed columns and the raw record.
const upsertListingPrefix = "INSERT INTO listings\n" +
	"  (source, source_listing_id, title, purpose, property_type, price, price_period,\n" +
	"   state, city, area, bedrooms, bathrooms, toilets, size, size_unit, url, raw, scraped_at)\nVALUES "

const upsertListingOnDup = " ON DUPLICATE KEY UPDATE\n" +
	"  title         = VALUES(title),\n" +
	"  purpose       = VALUES(purpose),\n" +
	"  property_type = VALUES(property_type),\n" +
	"  price         = VALUES(price),\n" +
	"  price_period  = VALUES(price_period),\n" +
	"  state         = VALUES(state),\n" +
	"  city          = VALUES(city),\n" +
	"  area          = VALUES(area),\n" +
	"  bedrooms      = VALUES(bedrooms),\n" +
	"  bathrooms     = VALUES(bathrooms),\n" +
	"  toilets       = VALUES(toilets),\n" +
	"  size          = VALUES(size),\n" +
	"  size_unit     = VALUES(size_unit),\n" +
	"  url           = VALUES(url),\n" +
	"  raw           = VALUES(raw),\n" +
	"  scraped_at    = VALUES(scraped_at)\n"

const listingColumns = 18

const insertSubmissionSQL = `
INSERT INTO property_submissions
  (id, title, property_type, listing_type, price, price_period, state, city, locality,
   address, bedrooms, bathrooms, toilets, size, description, is_serviced, is_furnished,
   features, agent_name, agent_phone, agent_email, agent_company, status, created_at)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const updateSubmissionStatusSQL = `
UPDATE property_submissions
SET status = ?,
    reviewed_at = ?,
    rejection_reason = COALESCE(?, rejection_reason)
WHERE id = ?
`

// -----------------------------------------------------------------------------
// READ QUERIES
// -----------------------------------------------------------------------------

const listListingsSQL = `
SELECT raw
FROM listings
ORDER BY scraped_at DESC, id DESC
`

// Newest first; the status filter is optional (NULL = any).
const listSubmissionsSQL = `
SELECT
  id, title, property_type, listing_type, price, price_period, state, city, locality,
  address, bedrooms, bathrooms, toilets, size, description, is_serviced, is_furnished,
  features, agent_name, agent_phone, agent_email, agent_company, status,
  rejection_reason, created_at, reviewed_at
FROM property_submissions
WHERE (? IS NULL OR status = ?)
ORDER BY created_at DESC, id DESC
`

const getSettingSQL = `SELECT setting_value FROM admin_settings WHERE setting_key = ?`
