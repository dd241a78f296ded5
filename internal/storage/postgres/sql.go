package postgres

const upsertListingSQL = `
INSERT INTO listings
  (source, source_listing_id, title, purpose, property_type, price, price_period,
   state, city, area, bedrooms, bathrooms, toilets, size, size_unit, url, raw_jsonb, scraped_at)
VALUES
  ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
ON CONFLICT (source, source_listing_id) DO UPDATE SET
  title         = EXCLUDED.title,
  purpose       = EXCLUDED.purpose,
  property_type = EXCLUDED.property_type,
  price         = EXCLUDED.price,
  price_period  = EXCLUDED.price_period,
  state         = EXCLUDED.state,
  city          = EXCLUDED.city,
  area          = EXCLUDED.area,
  bedrooms      = EXCLUDED.bedrooms,
  bathrooms     = EXCLUDED.bathrooms,
  toilets       = EXCLUDED.toilets,
  size          = EXCLUDED.size,
  size_unit     = EXCLUDED.size_unit,
  url           = EXCLUDED.url,
  raw_jsonb     = EXCLUDED.raw_jsonb,
  scraped_at    = EXCLUDED.scraped_at,
  updated_at    = now()
`

const insertSubmissionSQL = `
INSERT INTO property_submissions
  (id, title, property_type, listing_type, price, price_period, state, city, locality,
   address, bedrooms, bathrooms, toilets, size, description, is_serviced, is_furnished,
   features, agent_name, agent_phone, agent_email, agent_company, status, created_at)
VALUES
  ($1::text::uuid, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17,
   $18, $19, $20, $21, $22, $23, $24)
`

const updateSubmissionStatusSQL = `
UPDATE property_submissions
SET status = $1,
    reviewed_at = $2,
    rejection_reason = COALESCE($3, rejection_reason)
WHERE id = $4::text::uuid
`

const listListingsSQL = `
SELECT raw_jsonb
FROM listings
ORDER BY scraped_at DESC, id DESC
`

const listSubmissionsSQL = `
SELECT
  id::text, title, property_type, listing_type, price, price_period, state, city, locality,
  address, bedrooms, bathrooms, toilets, size, description, is_serviced, is_furnished,
  features, agent_name, agent_phone, agent_email, agent_company, status,
  rejection_reason, created_at, reviewed_at
FROM property_submissions
WHERE ($1::text IS NULL OR status = $1)
ORDER BY created_at DESC, id DESC
`

const getSettingSQL = `SELECT setting_value FROM admin_settings WHERE setting_key = $1`

const setSettingSQL = `
INSERT INTO admin_settings (setting_key, setting_value) VALUES ($1, $2)
ON CONFLICT (setting_key) DO UPDATE SET setting_value = EXCLUDED.setting_value, updated_at = now()
`
