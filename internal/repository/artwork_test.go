package repository

import (
	"testing"

	"catalog-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func mustUpdate(t *testing.T, key, op string, value *string) domain.Update {
	t.Helper()
	u, err := domain.NewArtworkUpdate(key, op, value)
	if err != nil {
		t.Fatalf("unexpected rejection: %v", err)
	}
	return u
}

func ptr(s string) *string { return &s }

func TestUpdateDocs(t *testing.T) {
	tests := []struct {
		name   string
		update domain.Update
		want   bson.M
	}{
		{"set scalar", mustUpdate(t, "title", "set", ptr("X")), bson.M{"$set": bson.M{"title": "X"}}},
		{"set sequence", mustUpdate(t, "links", "set", ptr("a, b")), bson.M{"$set": bson.M{"links": []string{"a", "b"}}}},
		{"push sequence", mustUpdate(t, "links", "push", ptr("http://a")), bson.M{"$push": bson.M{"links": "http://a"}}},
		{"push set", mustUpdate(t, "tags", "push", ptr("oil")), bson.M{"$addToSet": bson.M{"tags": "oil"}}},
		{"pop", mustUpdate(t, "links", "pop", nil), bson.M{"$pop": bson.M{"links": 1}}},
		{"clear scalar", mustUpdate(t, "creator", "clear", nil), bson.M{"$unset": bson.M{"creator": ""}}},
		{"clear sequence", mustUpdate(t, "tags", "clear", nil), bson.M{"$set": bson.M{"tags": bson.A{}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			build, ok := updateDocs[tt.update.Op]
			assert.True(t, ok)
			assert.Equal(t, tt.want, build(tt.update))
		})
	}
}
