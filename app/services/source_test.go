package services

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"postfeed/app/client"
	"postfeed/app/models"
)

// fakeSource serves canned data and can inject latency and failures.
type fakeSource struct {
	posts    []models.Post
	authors  map[int]models.Author
	comments map[int][]models.Comment

	postsErr    error
	authorErr   map[int]error
	commentsErr map[int]error

	// delay returns how long a fetch for the post waits before answering;
	// the wait ends early when the context is cancelled.
	delay func(postID int) time.Duration

	// blockAuthor makes FetchAuthor for the id block until cancelled.
	blockAuthor map[int]bool

	// commentsStarted is closed when FetchComments for the post id begins.
	// authorAwaits makes FetchAuthor for the author id wait on a channel
	// before answering.
	commentsStarted map[int]chan struct{}
	authorAwaits    map[int]chan struct{}

	mu          sync.Mutex
	inFlight    int
	maxInFlight int
	calls       atomic.Int64
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		authors:     map[int]models.Author{},
		comments:    map[int][]models.Comment{},
		authorErr:   map[int]error{},
		commentsErr: map[int]error{},
		blockAuthor: map[int]bool{},

		commentsStarted: map[int]chan struct{}{},
		authorAwaits:    map[int]chan struct{}{},
	}
}

func (f *fakeSource) addPost(id, authorID int, content string, comments ...string) {
	f.posts = append(f.posts, models.Post{ID: id, AuthorID: authorID, Content: content})
	if _, ok := f.authors[authorID]; !ok {
		f.authors[authorID] = models.Author{ID: authorID, Name: fmt.Sprintf("author-%d", authorID)}
	}
	cs := make([]models.Comment, 0, len(comments))
	for i, c := range comments {
		cs = append(cs, models.Comment{ID: id*100 + i, Content: c})
	}
	f.comments[id] = cs
}

func (f *fakeSource) wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return &client.TransportError{URL: "fake", Err: ctx.Err()}
	}
}

func (f *fakeSource) FetchPosts(ctx context.Context) ([]models.Post, error) {
	f.calls.Add(1)
	if f.postsErr != nil {
		return nil, f.postsErr
	}
	out := make([]models.Post, len(f.posts))
	copy(out, f.posts)
	return out, nil
}

func (f *fakeSource) FetchAuthor(ctx context.Context, id int) (models.Author, error) {
	f.calls.Add(1)
	if f.blockAuthor[id] {
		<-ctx.Done()
		return models.Author{}, &client.TransportError{URL: "fake", Err: ctx.Err()}
	}
	if ch, ok := f.authorAwaits[id]; ok {
		select {
		case <-ch:
		case <-ctx.Done():
			return models.Author{}, &client.TransportError{URL: "fake", Err: ctx.Err()}
		}
	}
	if err := f.authorErr[id]; err != nil {
		return models.Author{}, err
	}
	a, ok := f.authors[id]
	if !ok {
		return models.Author{}, &client.APIError{StatusCode: 404, Message: "Author not found"}
	}
	return a, nil
}

func (f *fakeSource) FetchComments(ctx context.Context, postID int) ([]models.Comment, error) {
	f.calls.Add(1)
	if ch, ok := f.commentsStarted[postID]; ok {
		close(ch)
	}
	f.mu.Lock()
	f.inFlight++
	if f.inFlight > f.maxInFlight {
		f.maxInFlight = f.inFlight
	}
	f.mu.Unlock()
	defer func() {
		f.mu.Lock()
		f.inFlight--
		f.mu.Unlock()
	}()

	if f.delay != nil {
		if err := f.wait(ctx, f.delay(postID)); err != nil {
			return nil, err
		}
	}
	if err := f.commentsErr[postID]; err != nil {
		return nil, err
	}
	cs := f.comments[postID]
	out := make([]models.Comment, len(cs))
	copy(out, cs)
	return out, nil
}
