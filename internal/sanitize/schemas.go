package sanitize

// Write schemas per entity. Public schemas back the self-service update
// operations; privileged schemas are reachable only through admin or webhook
// paths and additionally expose the protected subscription and account-state
// fields.

var BrandPublic = Schema{
	"company_name": {Type: TypeString},
	"website":      {Type: TypeURL},
	"industry":     {Type: TypeString},
	"description":  {Type: TypeString},
}

var CreatorPublic = Schema{
	"display_name":  {Type: TypeString},
	"bio":           {Type: TypeString},
	"categories":    {Type: TypeStringArray},
	"portfolio_url": {Type: TypeURL},
	"min_rate":      {Type: TypeNumber},
	"max_rate":      {Type: TypeNumber},
}

var CampaignPublic = Schema{
	"title":    {Type: TypeString},
	"brief":    {Type: TypeString},
	"budget":   {Type: TypeNumber},
	"deadline": {Type: TypeString},
}

var BrandPrivileged = merge(BrandPublic, protectedProfileFields)

var CreatorPrivileged = merge(CreatorPublic, protectedProfileFields)

// SubscriptionFields is the webhook-only schema: nothing but the
// payment-provider owned fields.
var SubscriptionFields = Schema{
	"subscription_status": {Type: TypeString},
	"plan_level":          {Type: TypeString},
	"stripe_customer_id":  {Type: TypeString},
}

var protectedProfileFields = Schema{
	"account_state":       {Type: TypeString},
	"onboarding_step":     {Type: TypeNumber},
	"subscription_status": {Type: TypeString},
	"plan_level":          {Type: TypeString},
	"stripe_customer_id":  {Type: TypeString},
}

func merge(schemas ...Schema) Schema {
	out := Schema{}
	for _, s := range schemas {
		for k, v := range s {
			out[k] = v
		}
	}
	return out
}

// PublicSchemaFor returns the self-service write schema for a profile variant.
func PublicSchemaFor(profileType string) Schema {
	if profileType == "creator" {
		return CreatorPublic
	}
	return BrandPublic
}

// PrivilegedSchemaFor returns the admin write schema for a profile variant.
func PrivilegedSchemaFor(profileType string) Schema {
	if profileType == "creator" {
		return CreatorPrivileged
	}
	return BrandPrivileged
}
