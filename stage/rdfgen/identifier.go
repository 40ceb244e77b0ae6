package rdfgen

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// datasetBase normalizes the dataset URI for use as an identifier prefix.
func datasetBase(datasetURI string) string {
	return strings.TrimRight(datasetURI, "/")
}

// recordIRI mints the entity IRI for one source row. Without a key value the
// identifier is positional; with one it is a name-based UUID derived from the
// dataset URI and the key, so the same logical record always gets the same
// identifier across runs.
func recordIRI(datasetURI string, index int, keyValue string) string {
	base := datasetBase(datasetURI)
	if keyValue == "" {
		return fmt.Sprintf("%s/record/%d", base, index)
	}
	return fmt.Sprintf("%s/record/%s", base, recordUUID(datasetURI, keyValue))
}

// recordUUID derives a stable name-based UUID for a record key. The dataset
// URI seeds a per-dataset namespace so equal keys in different datasets do
// not collide.
func recordUUID(datasetURI, keyValue string) uuid.UUID {
	ns := uuid.NewSHA1(uuid.NameSpaceURL, []byte(datasetURI))
	return uuid.NewSHA1(ns, []byte(keyValue))
}

// agentIRI mints the entity IRI for a publisher agent. Agents are numbered in
// first-appearance order across the row sequence.
func agentIRI(datasetURI string, ordinal int) string {
	return fmt.Sprintf("%s/agent/%d", datasetBase(datasetURI), ordinal)
}

// schemaIRI mints the IRI of the table schema entity.
func schemaIRI(datasetURI string) string {
	return datasetBase(datasetURI) + "/schema"
}

// columnIRI mints the IRI for one schema column, by declaration position.
func columnIRI(datasetURI string, index int) string {
	return fmt.Sprintf("%s/schema/column/%d", datasetBase(datasetURI), index)
}
