package adminstate

import (
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"agency-backend/internal/analytics"
	"agency-backend/internal/blogs"
	"agency-backend/internal/contacts"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReduceLoadingAndError(t *testing.T) {
	s := Reduce(State{Error: "old"}, SetLoading{Loading: true})
	assert.True(t, s.Loading)
	assert.Empty(t, s.Error)

	s = Reduce(s, SetError{Err: errors.New("boom")})
	assert.False(t, s.Loading)
	assert.Equal(t, "boom", s.Error)
}

func TestReduceDashboardLoaded(t *testing.T) {
	at := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	stats := analytics.Dashboard{Contacts: analytics.ContactStats{Total: 4}}

	s := Reduce(State{Loading: true}, DashboardLoaded{Stats: stats, At: at})
	require.NotNil(t, s.Dashboard)
	assert.Equal(t, int64(4), s.Dashboard.Contacts.Total)
	assert.False(t, s.Loading)
	assert.Equal(t, at, s.UpdatedAt)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	before := Reduce(State{}, BlogsLoaded{Items: []blogs.Blog{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}, Total: 2})

	after := Reduce(before, BlogUpdated{Blog: blogs.Blog{ID: "a", Title: "A2"}})
	assert.Equal(t, "A", before.Blogs[0].Title)
	assert.Equal(t, "A2", after.Blogs[0].Title)

	removed := Reduce(after, BlogRemoved{ID: "b"})
	assert.Len(t, after.Blogs, 2)
	require.Len(t, removed.Blogs, 1)
	assert.Equal(t, int64(1), removed.BlogsTotal)

	unchanged := Reduce(removed, BlogRemoved{ID: "missing"})
	assert.Equal(t, int64(1), unchanged.BlogsTotal)
}

func TestReduceBlogUpdatedPrependsUnknown(t *testing.T) {
	s := Reduce(State{Blogs: []blogs.Blog{{ID: "a"}}}, BlogUpdated{Blog: blogs.Blog{ID: "new"}})
	require.Len(t, s.Blogs, 2)
	assert.Equal(t, "new", s.Blogs[0].ID)
}

func TestReduceContacts(t *testing.T) {
	s := Reduce(State{}, ContactsLoaded{Items: []contacts.Contact{{ID: "c1", Status: "new"}}, Total: 1})
	s = Reduce(s, ContactUpdated{Contact: contacts.Contact{ID: "c1", Status: "closed"}})
	assert.Equal(t, "closed", s.Contacts[0].Status)

	s = Reduce(s, ContactUpdated{Contact: contacts.Contact{ID: "other"}})
	assert.Len(t, s.Contacts, 1)

	assert.Equal(t, State{}, Reduce(s, Reset{}))
}

func TestStoreNotifiesUntilUnsubscribed(t *testing.T) {
	st := NewStore(State{})
	var seen []bool
	unsubscribe := st.Subscribe(func(s State) { seen = append(seen, s.Loading) })

	st.Dispatch(SetLoading{Loading: true})
	st.Dispatch(SetLoading{Loading: false})
	unsubscribe()
	st.Dispatch(SetLoading{Loading: true})

	assert.Equal(t, []bool{true, false}, seen)
	assert.True(t, st.State().Loading)
}

func TestStoreSerializesDispatch(t *testing.T) {
	st := NewStore(State{})
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id string) {
			defer wg.Done()
			st.Dispatch(BlogUpdated{Blog: blogs.Blog{ID: id}})
		}(strconv.Itoa(i))
	}
	wg.Wait()
	assert.Len(t, st.State().Blogs, 50)
}
