package handler

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rohit98064/Tele-Bot/internal/domain"
	"github.com/rohit98064/Tele-Bot/internal/service"
)

type fakeTx struct {
	mu      sync.Mutex
	sent    []string
	edits   map[int]string
	deleted []int
	nextID  int
	sentCh  chan string
	delCh   chan int
}

func newFakeTx() *fakeTx {
	return &fakeTx{
		edits:  make(map[int]string),
		sentCh: make(chan string, 32),
		delCh:  make(chan int, 32),
	}
}

func (f *fakeTx) SendMessage(_ context.Context, _ int64, text string) (int, error) {
	f.mu.Lock()
	f.sent = append(f.sent, text)
	f.nextID++
	id := f.nextID
	f.mu.Unlock()
	f.sentCh <- text
	return id, nil
}

func (f *fakeTx) EditMessage(_ context.Context, _ int64, messageID int, text string) error {
	f.mu.Lock()
	f.edits[messageID] = text
	f.mu.Unlock()
	return nil
}

func (f *fakeTx) DeleteMessage(_ context.Context, _ int64, messageID int) error {
	f.mu.Lock()
	f.deleted = append(f.deleted, messageID)
	f.mu.Unlock()
	f.delCh <- messageID
	return nil
}

func (f *fakeTx) waitForSend(t *testing.T, substr string) string {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-f.sentCh:
			if strings.Contains(s, substr) {
				return s
			}
		case <-deadline:
			t.Fatalf("no message containing %q was sent", substr)
		}
	}
}

func (f *fakeTx) waitForDelete(t *testing.T) int {
	t.Helper()
	select {
	case id := <-f.delCh:
		return id
	case <-time.After(2 * time.Second):
		t.Fatal("no message was deleted")
		return 0
	}
}

func (f *fakeTx) drainSends() {
	for {
		select {
		case <-f.sentCh:
		default:
			return
		}
	}
}

func (f *fakeTx) editFor(messageID int) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.edits[messageID]
}

type fakeCatalog struct {
	video *domain.Video
	err   error
}

func (f *fakeCatalog) Resolve(_ context.Context, _ string) (*domain.Video, error) {
	return f.video, f.err
}

type fakeDelivery struct {
	err  error
	done chan domain.DeliveryRequest
}

func newFakeDelivery(err error) *fakeDelivery {
	return &fakeDelivery{err: err, done: make(chan domain.DeliveryRequest, 8)}
}

func (f *fakeDelivery) Deliver(_ context.Context, req domain.DeliveryRequest, _ int64) error {
	f.done <- req
	return f.err
}

func (f *fakeDelivery) waitForRequest(t *testing.T) domain.DeliveryRequest {
	t.Helper()
	select {
	case req := <-f.done:
		return req
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was never invoked")
		return domain.DeliveryRequest{}
	}
}

func menuVideo() *domain.Video {
	return &domain.Video{
		ID:          "dQw4w9WgXcQ",
		Title:       "Test Video",
		Author:      "Test Channel",
		DurationSec: 125,
		Views:       1234567,
		Variants: []domain.VideoVariant{
			{Itag: 22, Resolution: "720p", FPS: 30, Height: 720},
			{Itag: 18, Resolution: "480p", FPS: 30, Height: 480, SizeMB: 10.0},
		},
	}
}

func newTestHandler(catalog Catalog, delivery Deliverer, tx Transport) (*Handler, *service.SessionStore) {
	sessions := service.NewSessionStore()
	h := New(Deps{
		Sessions: sessions,
		Catalog:  catalog,
		Delivery: delivery,
		Tx:       tx,
	})
	return h, sessions
}

const testURL = "https://www.youtube.com/watch?v=dQw4w9WgXcQ"

func TestStrayTextWithoutSession(t *testing.T) {
	tx := newFakeTx()
	h, sessions := newTestHandler(&fakeCatalog{}, newFakeDelivery(nil), tx)

	h.HandleText(context.Background(), 10, 1, "7")

	tx.waitForSend(t, "No active session")
	if _, ok := sessions.Get(1); ok {
		t.Fatal("no session should be created by stray text")
	}
}

func TestURLShowsMenuAndStoresSession(t *testing.T) {
	tx := newFakeTx()
	h, sessions := newTestHandler(&fakeCatalog{video: menuVideo()}, newFakeDelivery(nil), tx)

	h.HandleText(context.Background(), 10, 1, testURL)

	tx.waitForSend(t, "Processing URL")
	info := tx.waitForSend(t, "Test Video")
	if !strings.Contains(info, "Test Channel") || !strings.Contains(info, "2:05") || !strings.Contains(info, "1,234,567") {
		t.Fatalf("unexpected info message: %q", info)
	}

	sess, ok := sessions.Get(1)
	if !ok {
		t.Fatal("expected a stored session")
	}
	if len(sess.Variants) != 2 || sess.Title != "Test Video" {
		t.Fatalf("unexpected session: %+v", sess)
	}

	menu := tx.editFor(sess.MenuMessageID)
	if !strings.Contains(menu, "1. 720p (30fps) - UnknownMB") {
		t.Fatalf("menu missing 720p row: %q", menu)
	}
	if !strings.Contains(menu, "2. 480p (30fps) - 10.0MB") {
		t.Fatalf("menu missing 480p row: %q", menu)
	}
	if strings.Index(menu, "720p") > strings.Index(menu, "480p") {
		t.Fatalf("menu rows out of order: %q", menu)
	}

	// Processing message cleaned up
	tx.waitForDelete(t)
}

func TestChoiceDeliversAndConsumesSession(t *testing.T) {
	tx := newFakeTx()
	delivery := newFakeDelivery(nil)
	h, sessions := newTestHandler(&fakeCatalog{video: menuVideo()}, delivery, tx)

	h.HandleText(context.Background(), 10, 1, testURL)
	tx.drainSends()

	h.HandleText(context.Background(), 10, 1, "2")

	req := delivery.waitForRequest(t)
	if req.Variant.Itag != 18 || req.Variant.Resolution != "480p" {
		t.Fatalf("wrong variant delivered: %+v", req.Variant)
	}
	if req.Title != "Test Video" || req.VideoID != "dQw4w9WgXcQ" {
		t.Fatalf("wrong request: %+v", req)
	}
	if _, ok := sessions.Get(1); ok {
		t.Fatal("session should be consumed by an accepted choice")
	}
}

func TestBadChoicesKeepSession(t *testing.T) {
	tx := newFakeTx()
	delivery := newFakeDelivery(nil)
	h, sessions := newTestHandler(&fakeCatalog{video: menuVideo()}, delivery, tx)

	h.HandleText(context.Background(), 10, 1, testURL)
	tx.drainSends()

	h.HandleText(context.Background(), 10, 1, "5")
	out := tx.waitForSend(t, "between 1 and")
	if !strings.Contains(out, "between 1 and 2") {
		t.Fatalf("out-of-range message should name the bound: %q", out)
	}
	if _, ok := sessions.Get(1); !ok {
		t.Fatal("out-of-range reply must keep the session")
	}

	h.HandleText(context.Background(), 10, 1, "abc")
	tx.waitForSend(t, "valid number")
	if _, ok := sessions.Get(1); !ok {
		t.Fatal("unparsable reply must keep the session")
	}

	// The menu is still valid after failed attempts.
	h.HandleText(context.Background(), 10, 1, "1")
	req := delivery.waitForRequest(t)
	if req.Variant.Itag != 22 {
		t.Fatalf("expected 720p after retries, got %+v", req.Variant)
	}
}

func TestPreferredShortCircuitSkipsMenu(t *testing.T) {
	video := menuVideo()
	video.Variants = append([]domain.VideoVariant{
		{Itag: 37, Resolution: "1080p", FPS: 30, Height: 1080, SizeMB: 42.0},
	}, video.Variants...)

	tx := newFakeTx()
	delivery := newFakeDelivery(nil)
	h, sessions := newTestHandler(&fakeCatalog{video: video}, delivery, tx)

	h.HandleText(context.Background(), 10, 1, testURL)

	req := delivery.waitForRequest(t)
	if req.Variant.Itag != 37 {
		t.Fatalf("expected direct 1080p delivery, got %+v", req.Variant)
	}
	if _, ok := sessions.Get(1); ok {
		t.Fatal("no session should exist on the short-circuit path")
	}

	tx.mu.Lock()
	defer tx.mu.Unlock()
	found := false
	for _, text := range tx.edits {
		if strings.Contains(text, "1080p Quality Available") {
			found = true
		}
		if strings.Contains(text, "Available Resolutions") {
			t.Fatalf("menu must not be shown: %q", text)
		}
	}
	if !found {
		t.Fatal("expected the 1080p notice edit")
	}
}

func TestNewURLReplacesPendingSession(t *testing.T) {
	first := menuVideo()
	second := menuVideo()
	second.ID = "bbbbbbbbbbb"
	second.Title = "Other Video"

	catalog := &fakeCatalog{video: first}
	tx := newFakeTx()
	h, sessions := newTestHandler(catalog, newFakeDelivery(nil), tx)

	h.HandleText(context.Background(), 10, 1, testURL)
	catalog.video = second
	h.HandleText(context.Background(), 10, 1, "https://youtu.be/bbbbbbbbbbb")

	sess, ok := sessions.Get(1)
	if !ok {
		t.Fatal("expected a session for the second URL")
	}
	if sess.VideoID != "bbbbbbbbbbb" {
		t.Fatalf("session still holds the first video: %+v", sess)
	}
}

func TestResolveErrorsReported(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"invalid url", domain.ErrInvalidURL, "valid YouTube URL"},
		{"no streams", domain.ErrNoStreams, "No MP4 streams"},
		{"extraction", &domain.ExtractionError{URL: testURL, Err: errors.New("video unavailable")}, "video unavailable"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tx := newFakeTx()
			h, sessions := newTestHandler(&fakeCatalog{err: tc.err}, newFakeDelivery(nil), tx)

			h.HandleText(context.Background(), 10, 1, testURL)

			tx.waitForSend(t, tc.want)
			if _, ok := sessions.Get(1); ok {
				t.Fatal("no session may survive a failed lookup")
			}
		})
	}
}

func TestFailedDeliveryReportsAndDiscardsSession(t *testing.T) {
	tx := newFakeTx()
	delivery := newFakeDelivery(&domain.FetchError{VideoID: "dQw4w9WgXcQ", Itag: 18, Err: errors.New("disk full")})
	h, sessions := newTestHandler(&fakeCatalog{video: menuVideo()}, delivery, tx)

	h.HandleText(context.Background(), 10, 1, testURL)
	tx.drainSends()

	h.HandleText(context.Background(), 10, 1, "2")

	delivery.waitForRequest(t)
	tx.waitForSend(t, "Download failed")
	if _, ok := sessions.Get(1); ok {
		t.Fatal("session must be discarded even when delivery fails")
	}
}

func TestChooseVariant(t *testing.T) {
	sess := &domain.Session{Variants: []domain.VideoVariant{
		{Itag: 22, Resolution: "720p"},
		{Itag: 18, Resolution: "480p"},
	}}

	if _, err := chooseVariant(nil, "1"); !errors.Is(err, domain.ErrNoActiveSession) {
		t.Fatalf("expected ErrNoActiveSession, got %v", err)
	}
	if _, err := chooseVariant(sess, "one"); !errors.Is(err, domain.ErrInvalidChoice) {
		t.Fatalf("expected ErrInvalidChoice, got %v", err)
	}
	for _, reply := range []string{"0", "3", "-1"} {
		if _, err := chooseVariant(sess, reply); !errors.Is(err, domain.ErrOutOfRange) {
			t.Fatalf("reply %q: expected ErrOutOfRange, got %v", reply, err)
		}
	}
	v, err := chooseVariant(sess, "2")
	if err != nil || v.Itag != 18 {
		t.Fatalf("chooseVariant(2) = %+v, %v", v, err)
	}
}
