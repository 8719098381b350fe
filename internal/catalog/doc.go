// Package catalog extracts the author index from the rows of an HTML table
// whose data rows are grouped under alphabetic header rows. Extraction is
// pure: it works on the Row interface and never touches the network.
package catalog
