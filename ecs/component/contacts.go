package component

// Contacts counts the colliders an entity currently touches. Any positive
// count means grounded, walls included.
type Contacts struct {
	Count int
}

func (c *Contacts) Grounded() bool {
	return c.Count > 0
}

var ContactsComponent = NewComponent[Contacts]()
