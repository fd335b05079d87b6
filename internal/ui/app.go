package ui

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/restyle/restyle/internal/api"
	"github.com/restyle/restyle/internal/cart"
	"github.com/restyle/restyle/internal/catalog"
	"github.com/restyle/restyle/internal/engage"
	"github.com/restyle/restyle/internal/localstore"
	"github.com/restyle/restyle/internal/session"
	"github.com/restyle/restyle/internal/state"
)

// View represents the current active view.
type View int

const (
	ViewBrowse View = iota
	ViewDetail
	ViewFavorites
	ViewCart
	ViewAccount
	ViewSell
)

// requestTimeout bounds every request issued from a key press.
const requestTimeout = 10 * time.Second

// Options configures the UI.
type Options struct {
	Context   context.Context
	Client    *api.Client
	Store     *state.Store
	Session   *session.Resolver
	Cart      *cart.Service
	Engage    *engage.Engine
	LocalFavs *engage.LocalSet
	LocalCart *cart.LocalList
	Prefs     *localstore.Store
	PollTick  time.Duration
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Wiring
	ctx       context.Context
	client    *api.Client
	store     *state.Store
	session   *session.Resolver
	cart      *cart.Service
	engage    *engage.Engine
	localFavs *engage.LocalSet
	localCart *cart.LocalList
	prefs     *localstore.Store
	pollTick  time.Duration

	// UI state
	theme       Theme
	styles      Styles
	keys        keyMap
	currentView View
	width       int
	height      int
	ready       bool
	showHelp    bool

	// Status line
	status    string
	statusErr bool

	// Catalog data
	snapshot    state.Snapshot
	lastUpdated time.Time

	// Per-view state
	browse    browseState
	detail    detailState
	favorites favoritesState
	cartView  cartViewState
	auth      authState
	sell      sellState
}

// browseState holds the catalog list view state.
type browseState struct {
	selected  int
	filter    catalog.Filter
	sortField string
	sortOrder catalog.Order
	searching bool
	search    textinput.Model
}

// detailState holds the open product view state. seq invalidates
// responses that arrive after the view moved to another product.
type detailState struct {
	seq        int
	product    *api.Product
	commenting bool
	comment    textinput.Model
	selected   int // comment cursor, for deletion
}

type favoritesState struct {
	seq      int
	products []api.Product
	selected int
}

type cartViewState struct {
	selected int
	checkout string // redirect URL from the last checkout session
}

// authState is the login/signup form. seq invalidates responses from
// submissions abandoned by leaving the view.
type authState struct {
	seq    int
	signup bool
	inputs []textinput.Model
	focus  int
	busy   bool
}

type sellState struct {
	seq      int
	editing  bool
	selected int
	inputs   []textinput.Model
	focus    int
	busy     bool
}

// New creates the root model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	pollTick := opts.PollTick
	if pollTick == 0 {
		pollTick = 30 * time.Second
	}

	themeName := "Dracula"
	if opts.Prefs != nil {
		themeName = opts.Prefs.Theme()
	}
	theme := GetTheme(themeName)

	m := Model{
		ctx:       ctx,
		client:    opts.Client,
		store:     opts.Store,
		session:   opts.Session,
		cart:      opts.Cart,
		engage:    opts.Engage,
		localFavs: opts.LocalFavs,
		localCart: opts.LocalCart,
		prefs:     opts.Prefs,
		pollTick:  pollTick,
		theme:     theme,
		styles:    theme.Styles(),
		keys:      defaultKeyMap(),
	}

	m.browse.search = newSearchInput()
	m.detail.comment = newCommentInput()
	m.auth.inputs = newAuthInputs(false)
	m.sell.inputs = newSellInputs()

	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.EnterAltScreen,
		tickCmd(m.pollTick),
	}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tickMsg:
		return m.handleTick()

	case snapshotMsg:
		m.snapshot = state.Snapshot(msg)
		m.lastUpdated = time.Now()
		m.clampBrowseCursor()
		return m, nil

	case unauthorizedMsg:
		// The server rejected an authenticated request. Route to the
		// account view so the user can sign back in.
		m.auth.seq++
		m.auth.busy = false
		m.currentView = ViewAccount
		m.setError("session expired, please log in")
		return m, nil

	case favoriteUpdateMsg, likeUpdateMsg:
		// Engine state changed (optimistic flip or settle). Rendering
		// reads the engine directly, so receiving the message is
		// enough to trigger a redraw.
		return m, nil

	case toggleDoneMsg:
		return m.handleToggleDone(msg)

	case productMsg:
		return m.handleProduct(msg)

	case commentsMsg:
		return m.handleComments(msg)

	case favoritesMsg:
		return m.handleFavorites(msg)

	case cartDoneMsg:
		return m.handleCartDone(msg)

	case checkoutMsg:
		return m.handleCheckout(msg)

	case authDoneMsg:
		return m.handleAuthDone(msg)

	case signOutMsg:
		if msg.err != nil {
			m.setError(errorText(msg.err))
		} else {
			m.setStatus("signed out")
		}
		m.currentView = ViewBrowse
		return m, nil

	case sellDoneMsg:
		return m.handleSellDone(msg)
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderContent())
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

func (m Model) renderContent() string {
	switch m.currentView {
	case ViewBrowse:
		return m.renderBrowse()
	case ViewDetail:
		return m.renderDetail()
	case ViewFavorites:
		return m.renderFavorites()
	case ViewCart:
		return m.renderCart()
	case ViewAccount:
		return m.renderAccount()
	case ViewSell:
		return m.renderSell()
	default:
		return ""
	}
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		// Any key closes help.
		m.showHelp = false
		return m, nil
	}

	// Text-entry modes capture everything except escape.
	if m.browse.searching && m.currentView == ViewBrowse {
		return m.handleSearchKey(msg)
	}
	if m.detail.commenting && m.currentView == ViewDetail {
		return m.handleCommentKey(msg)
	}
	if m.currentView == ViewAccount && m.session != nil {
		if _, ok := m.session.Actor(); !ok {
			return m.handleAuthKey(msg)
		}
	}
	if m.currentView == ViewSell && m.sellFormActive() {
		return m.handleSellFormKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		return m, nil

	case key.Matches(msg, m.keys.Theme):
		m.theme = GetTheme(NextTheme(m.theme.Name))
		m.styles = m.theme.Styles()
		if m.prefs != nil {
			_ = m.prefs.SetTheme(m.theme.Name)
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, refreshCatalogCmd(m.ctx, m.client, m.store)

	case key.Matches(msg, m.keys.Browse):
		m.switchView(ViewBrowse)
		return m, nil

	case key.Matches(msg, m.keys.Favorites):
		m.switchView(ViewFavorites)
		return m, m.loadFavoritesCmd()

	case key.Matches(msg, m.keys.CartView):
		m.switchView(ViewCart)
		return m, m.loadCartCmd()

	case key.Matches(msg, m.keys.Auth):
		m.switchView(ViewAccount)
		return m, nil

	case key.Matches(msg, m.keys.Sell):
		m.switchView(ViewSell)
		return m, nil

	case key.Matches(msg, m.keys.Back):
		if m.currentView == ViewDetail {
			m.closeDetail()
			m.currentView = ViewBrowse
			return m, nil
		}
		m.switchView(ViewBrowse)
		return m, nil
	}

	switch m.currentView {
	case ViewBrowse:
		return m.handleBrowseKey(msg)
	case ViewDetail:
		return m.handleDetailKey(msg)
	case ViewFavorites:
		return m.handleFavoritesKey(msg)
	case ViewCart:
		return m.handleCartKey(msg)
	case ViewAccount:
		return m.handleAccountKey(msg)
	case ViewSell:
		return m.handleSellKey(msg)
	}

	return m, nil
}

// switchView changes the active view and invalidates responses still
// in flight for the view being left.
func (m *Model) switchView(v View) {
	if m.currentView == v {
		return
	}
	if m.currentView == ViewDetail {
		m.closeDetail()
	}
	if m.currentView == ViewFavorites {
		m.favorites.seq++
	}
	if m.currentView == ViewAccount {
		m.auth.seq++
		m.auth.busy = false
	}
	if m.currentView == ViewSell {
		m.sell.seq++
		m.sell.busy = false
	}
	m.status = ""
	m.statusErr = false
	m.currentView = v
}

func (m *Model) closeDetail() {
	m.detail.seq++
	m.detail.product = nil
	m.detail.commenting = false
	m.detail.comment.Reset()
	m.detail.comment.Blur()
}

// handleTick processes the polling tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{tickCmd(m.pollTick)}
	if m.store != nil {
		cmds = append(cmds, fetchSnapshotCmd(m.store))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.statusErr = false
}

func (m *Model) setError(text string) {
	m.status = text
	m.statusErr = true
}

func (m Model) authenticated() bool {
	if m.session == nil {
		return false
	}
	_, ok := m.session.Actor()
	return ok
}

// visibleProducts applies the browse filter and sort to the latest
// catalog snapshot.
func (m Model) visibleProducts() []api.Product {
	products := catalog.Apply(m.snapshot.Products, m.browse.filter)
	return catalog.Sort(products, m.browse.sortField, m.browse.sortOrder)
}

func (m *Model) clampBrowseCursor() {
	n := len(m.visibleProducts())
	if n == 0 {
		m.browse.selected = 0
		return
	}
	if m.browse.selected >= n {
		m.browse.selected = n - 1
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())

	// Deliver asynchronous state changes as messages. The engine
	// notifies on the optimistic flip and again when the server
	// settles; the client fires when any request comes back 401.
	if opts.Client != nil {
		opts.Client.OnUnauthorized(func() {
			p.Send(unauthorizedMsg{})
		})
	}
	if opts.Engage != nil {
		opts.Engage.OnFavorite(func(id string, favorited bool) {
			p.Send(favoriteUpdateMsg{id: id, favorited: favorited})
		})
		opts.Engage.OnLike(func(id string, count int, liked bool) {
			p.Send(likeUpdateMsg{id: id, count: count, liked: liked})
		})
	}

	_, err := p.Run()
	return err
}
