package constants

// Environments
const (
	EnvDevelop    = "develop"
	EnvProduction = "production"
)

// Pub/Sub providers
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Geocoding providers
const (
	GeocodeProviderNominatim = "nominatim"
	GeocodeProviderGoogle    = "google"
)

// Event types carried in the "event_type" message attribute.
const (
	EventOrderCommitted = "order.committed"
)
