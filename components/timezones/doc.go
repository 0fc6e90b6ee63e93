// Package timezones supplies IANA timezone names as select and radio options.
//
// The embedded list under data/zones.txt covers the commonly used zones;
// WithZones swaps in another list. Provider plugs into field.Choices or a
// definitions.Catalog under the name ProviderName.
package timezones
