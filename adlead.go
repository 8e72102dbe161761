// Package adlead extracts contact records from scraped classified-ad
// listing pages and ingests them into persistent storage exactly once
// per source URL, notifying a chat channel when a new listing lands.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, phonenumbers/, rod/).
package adlead
