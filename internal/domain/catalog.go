package domain

type Tag struct {
	ID   int64  `json:"id" bson:"id"`
	Name string `json:"name,omitempty" bson:"name"`
}

type Creator struct {
	ID   int64  `json:"id" bson:"id"`
	Name string `json:"name,omitempty" bson:"name"`
}
