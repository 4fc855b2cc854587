package db

// DB is the database port the repositories are built against. The dispatch
// log and contact list currently run on GORM/Postgres; the port keeps the
// driver swappable without touching the repositories' constructors.
type DB interface {
	// Conn returns the underlying driver handle (e.g. *gorm.DB).
	Conn() any
}
