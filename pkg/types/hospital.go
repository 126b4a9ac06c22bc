package types

type Hospital struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Address      string  `db:"address" json:"address"`
	Contact      *string `db:"contact" json:"contact,omitempty"`
	DisplayOrder int     `db:"display_order" json:"-"`
}
