package models

// Info is a site-wide banner. At most one banner is enabled at a time;
// enabling one disables the others.
type Info struct {
	ID      int    `db:"id" json:"id"`
	HTML    string `db:"html" json:"html"`
	CSS     string `db:"css" json:"css"`
	Enabled bool   `db:"enabled" json:"enabled"`
}
