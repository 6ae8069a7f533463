package blocks

// DefaultPacks maps the shipped theme pack keys to their stylesheet paths.
func DefaultPacks() map[string]string {
	return map[string]string{
		"interweb": "/assets/packs/interweb.css",
		"pizza":    "/assets/packs/pizza.css",
	}
}
