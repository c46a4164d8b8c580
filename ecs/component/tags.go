package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

type ProjectileTag struct{}

var ProjectileTagComponent = NewComponent[ProjectileTag]()
