// Package session orchestrates the end-to-end wiki build sequence and owns
// all transient UI state: loading phase, active page, error, and toast.
package session

import (
	"context"
	"fmt"
	"log"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sourcegraph/conc/pool"

	"repowiki/internal/githost"
	"repowiki/internal/locate"
	"repowiki/internal/wiki"
)

// Phase is the controller's lifecycle state. Exactly one phase is active at
// a time.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseReady
	PhaseError
)

// keyFileCandidates is the fixed set of well-known paths fetched as
// representative input for the generation prompt. Matching against the tree
// is case-insensitive; missing files are simply omitted.
var keyFileCandidates = []string{
	"README.md",
	"package.json",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
	"requirements.txt",
	"Makefile",
}

// keyFileFetchers bounds the concurrent content fetches in the key-file
// step. Each fetch is independent and failure-tolerant, so fanning out is
// safe.
const keyFileFetchers = 4

// State is a snapshot of the controller's UI/process state.
type State struct {
	Phase        Phase
	Step         string // loading step label, set while PhaseLoading
	ErrMsg       string // human-readable failure, set while PhaseError
	ActivePageID string
	SidebarOpen  bool
	Toast        string
	RepoURL      string // normalized input URL, set once a build succeeds
	Doc          *wiki.Document
}

// Event notifies the UI of build progress.
type Event struct {
	Type    EventType
	Step    string // for EventStep
	Message string // for EventError
}

type EventType int

const (
	EventStep EventType = iota
	EventReady
	EventError
)

// SourceFactory returns the data source for a hosting service.
type SourceFactory func(host locate.Host) (githost.Source, error)

// SynthFactory returns a fresh synthesizer. It is invoked once per build so
// credentials are re-resolved from the execution environment each time.
type SynthFactory func(ctx context.Context) (WikiGenerator, error)

// WikiGenerator is the synthesizer contract the controller depends on.
type WikiGenerator interface {
	GenerateWiki(ctx context.Context, info *githost.RepoInfo, fileTree string, keyFiles map[string]string) (*wiki.Document, error)
}

// Controller owns the session state and the current document. At most one
// document is live at a time: starting a new build discards the previous one
// unconditionally. All mutation goes through the controller; each build
// carries an epoch token so a stale in-flight build can never overwrite a
// newer one's state.
type Controller struct {
	mu             sync.Mutex
	state          State
	epoch          string
	sources        SourceFactory
	newSynth       SynthFactory
	maxTreeEntries int
}

// New creates an idle Controller.
func New(sources SourceFactory, newSynth SynthFactory, maxTreeEntries int) *Controller {
	if maxTreeEntries <= 0 {
		maxTreeEntries = 150
	}
	return &Controller{
		sources:        sources,
		newSynth:       newSynth,
		maxTreeEntries: maxTreeEntries,
	}
}

// State returns a snapshot of the current state. The embedded document is
// immutable and safe to read concurrently.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Build runs the full build sequence for the given input, which may be a
// repository URL or a share link. wantPage is the externally requested page
// id ("" for none); share links carry their own. Progress arrives on the
// returned channel, which is closed when the build settles or goes stale.
func (c *Controller) Build(ctx context.Context, input, wantPage string) <-chan Event {
	if repoURL, linkedPage, ok := ParseLink(input); ok {
		input = repoURL
		if wantPage == "" {
			wantPage = linkedPage
		}
	}

	c.mu.Lock()
	epoch := uuid.NewString()
	c.epoch = epoch
	c.state = State{Phase: PhaseLoading, Step: "Resolving repository"}
	c.mu.Unlock()

	events := make(chan Event, 8)
	go func() {
		defer close(events)
		c.runBuild(ctx, epoch, input, wantPage, events)
	}()
	return events
}

// runBuild executes steps 1-6 of the build sequence. Every state write is
// epoch-guarded; a stale build stops emitting and leaves state untouched.
func (c *Controller) runBuild(ctx context.Context, epoch, input, wantPage string, events chan<- Event) {
	fail := func(msg string) {
		if msg == "" {
			msg = "The documentation build failed. Please try again."
		}
		if c.setState(epoch, func(s *State) {
			*s = State{Phase: PhaseError, ErrMsg: msg}
		}) {
			events <- Event{Type: EventError, Message: msg}
		}
	}
	step := func(label string) bool {
		if !c.setState(epoch, func(s *State) { s.Step = label }) {
			return false
		}
		events <- Event{Type: EventStep, Step: label}
		return true
	}

	// Step 1: resolve the reference.
	ref := locate.Parse(input)
	if ref == nil {
		fail("Invalid repository URL. Expected something like github.com/owner/repo.")
		return
	}

	src, err := c.sources(ref.Host)
	if err != nil {
		fail(err.Error())
		return
	}

	// Step 2: metadata; the reported default branch wins over the placeholder.
	if !step("Fetching repository metadata") {
		return
	}
	info, err := src.GetRepoDetails(ctx, ref.Owner, ref.Repo)
	if err != nil {
		fail(err.Error())
		return
	}
	branch := info.DefaultBranch
	if branch == "" {
		branch = ref.Branch
	}

	// Step 3: file tree.
	if !step("Fetching file tree") {
		return
	}
	entries, err := src.GetTree(ctx, ref.Owner, ref.Repo, branch)
	if err != nil {
		fail(err.Error())
		return
	}
	listing := buildTreeListing(entries, c.maxTreeEntries)

	// Step 4: key files, best-effort and parallel.
	if !step("Reading key files") {
		return
	}
	keyFiles := c.fetchKeyFiles(ctx, src, ref.Owner, ref.Repo, branch, entries)

	// Step 5: generation.
	if !step("Generating documentation") {
		return
	}
	gen, err := c.newSynth(ctx)
	if err != nil {
		fail(err.Error())
		return
	}
	doc, err := gen.GenerateWiki(ctx, info, listing, keyFiles)
	if err != nil {
		log.Printf("session: generation failed for %s: %v", ref.Slug(), err)
		fail("The documentation build failed. Please try again.")
		return
	}

	// Step 6: ready. A requested page id wins when it exists; otherwise the
	// first page.
	active := doc.FirstPageID()
	if wantPage != "" && doc.Page(wantPage) != nil {
		active = wantPage
	}
	if c.setState(epoch, func(s *State) {
		*s = State{
			Phase:        PhaseReady,
			ActivePageID: active,
			RepoURL:      ref.URL(),
			Doc:          doc,
		}
	}) {
		events <- Event{Type: EventReady}
	}
}

// setState applies fn to the state if the build epoch is still current.
// Returns false when the build has gone stale.
func (c *Controller) setState(epoch string, fn func(*State)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != "" && c.epoch != epoch {
		return false
	}
	fn(&c.state)
	return true
}

// Navigate activates the page with the given id. Unknown ids are silently
// ignored. Navigating closes any open sidebar overlay.
func (c *Controller) Navigate(pageID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Doc == nil || c.state.Doc.Page(pageID) == nil {
		return
	}
	c.state.ActivePageID = pageID
	c.state.SidebarOpen = false
}

// ToggleSidebar flips the sidebar overlay.
func (c *Controller) ToggleSidebar() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SidebarOpen = !c.state.SidebarOpen
}

// SetToast sets a transient notification; ClearToast removes it. Auto-
// dismissal timing is the UI's concern.
func (c *Controller) SetToast(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Toast = msg
}

func (c *Controller) ClearToast() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Toast = ""
}

// ShareLink returns a URL that reproduces the current build and page, or ""
// when no document is live.
func (c *Controller) ShareLink() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Doc == nil {
		return ""
	}
	return EncodeLink(c.state.RepoURL, c.state.ActivePageID)
}

// StartNew discards the current document and returns to idle. Advancing the
// epoch orphans any in-flight build.
func (c *Controller) StartNew() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch = uuid.NewString()
	c.state = State{Phase: PhaseIdle}
}

// buildTreeListing filters dependency-cache and dot-prefixed paths out of
// the tree and joins the first max remaining paths, order preserved.
func buildTreeListing(entries []githost.TreeEntry, max int) string {
	var paths []string
	for _, e := range entries {
		if skipTreePath(e.Path) {
			continue
		}
		paths = append(paths, e.Path)
		if len(paths) == max {
			break
		}
	}
	return strings.Join(paths, "\n")
}

// skipTreePath reports whether a path is under a dependency cache or a
// dot-prefixed directory.
func skipTreePath(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if seg == "node_modules" || seg == "vendor" || strings.HasPrefix(seg, ".") {
			return true
		}
	}
	return false
}

// fetchKeyFiles fetches content for each key-file candidate present in the
// tree. Fetches run in parallel; missing or empty files are omitted, never
// an error.
func (c *Controller) fetchKeyFiles(ctx context.Context, src githost.Source, owner, repo, branch string, entries []githost.TreeEntry) map[string]string {
	var targets []string
	for _, candidate := range keyFileCandidates {
		for _, e := range entries {
			if e.Kind == githost.EntryFile && strings.EqualFold(e.Path, candidate) {
				targets = append(targets, e.Path)
				break
			}
		}
	}

	var mu sync.Mutex
	keyFiles := make(map[string]string, len(targets))

	p := pool.New().WithMaxGoroutines(keyFileFetchers)
	for _, path := range targets {
		p.Go(func() {
			content := src.GetFileContent(ctx, owner, repo, branch, path)
			if content == "" {
				return
			}
			mu.Lock()
			keyFiles[path] = content
			mu.Unlock()
		})
	}
	p.Wait()

	return keyFiles
}

// String returns a short label for a phase, for logs and status lines.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseReady:
		return "ready"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}
