package repository

const (
	artworksCollection = "artworks"
	usersCollection    = "users"
	tagsCollection     = "tags"
	creatorsCollection = "creators"
	countersCollection = "counters"

	// artworkCounterKey is the counters document holding the last issued artwork id.
	artworkCounterKey = "artworks"
)
