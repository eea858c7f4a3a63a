package console

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/olegiv/userdesk/internal/model"
)

func TestFilterUsers(t *testing.T) {
	users := []model.User{
		{ID: 1, FirstName: "Alice", LastName: "Smith", Username: "alice@example.com"},
		{ID: 2, FirstName: "Bob", LastName: "Jones", Username: "bob@example.com"},
		{ID: 3, FirstName: "Jürgen", LastName: "Straße", Username: "js@example.de"},
		{ID: 4, FirstName: "Anna", LastName: "Blacksmith", Username: "anna@example.com"},
	}

	ids := func(us []model.User) []int64 {
		out := []int64{}
		for _, u := range us {
			out = append(out, u.ID)
		}
		return out
	}

	tests := []struct {
		keyword string
		want    []int64
	}{
		{"smith", []int64{1, 4}},
		{"SMITH", []int64{1, 4}},
		{"example.com", []int64{1, 2, 4}},
		{"JÜRGEN", []int64{3}},
		{"straße", []int64{3}},
		{"nobody", []int64{}},
	}
	for _, tt := range tests {
		t.Run(tt.keyword, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FilterUsers(users, tt.keyword)))
		})
	}
}

func TestFilterUsers_IgnoresAge(t *testing.T) {
	users := []model.User{{ID: 1, FirstName: "A", LastName: "B", Username: "c", Age: 30}}
	assert.Empty(t, FilterUsers(users, "30"))
}
