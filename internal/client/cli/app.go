package cli

import (
	"bufio"
	"context"
	"math/rand"
	"os"
	"time"

	"github.com/acemeet/aceletters/internal/client/api"
	"github.com/acemeet/aceletters/internal/client/config"
	"github.com/acemeet/aceletters/internal/client/filter"
	"github.com/acemeet/aceletters/internal/client/models"
	"github.com/acemeet/aceletters/internal/client/services"
	"github.com/acemeet/aceletters/internal/client/session"
	"github.com/acemeet/aceletters/internal/logging"

	_ "modernc.org/sqlite"
)

// App wires the services together and carries the interactive session
// state: who is logged in, the current filter spec, and the last listing
// shown to the user (so commands can address profiles by number).
type App struct {
	config  *config.Config
	log     logging.Logger
	client  api.Client
	auth    services.AuthService
	dir     *services.DirectoryService
	letters *services.LetterService

	// armed after login/restore, cleared on logout
	favorites *services.FavoriteService
	inbox     *services.InboxService
	session   session.Session

	// one compose session per recipient, so a pair blocked by an
	// outstanding letter stays blocked without re-asking the server
	composes map[string]*services.Compose

	spec    filter.Spec
	listing []models.Profile
	inboxed []models.Letter

	reader *bufio.Reader
	rng    *rand.Rand
}

func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {

	ctx := context.Background()

	db, err := session.InitDatabase(ctx, cfg.StateDBPath)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}
	sessions := session.NewSQLiteStore(db)

	apiClient := api.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, log)

	return &App{
		config:  cfg,
		log:     log,
		client:  apiClient,
		auth:    services.NewAuthService(apiClient, sessions, log),
		dir:     services.NewDirectoryService(apiClient, log),
		letters: services.NewLetterService(apiClient, log),
		reader:  bufio.NewReader(os.Stdin),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.session.UserID != ""
}

func (a *App) viewerID() string {
	return a.session.UserID
}

// arm binds the per-user services to the authenticated identity.
func (a *App) arm(sess session.Session) {
	a.session = sess
	a.favorites = services.NewFavoriteService(a.client, sess.UserID, a.log)
	a.inbox = services.NewInboxService(a.client, sess.UserID, a.log)
	a.composes = make(map[string]*services.Compose)
}

func (a *App) disarm() {
	a.session = session.Session{}
	a.favorites = nil
	a.inbox = nil
	a.composes = nil
	a.listing = nil
	a.inboxed = nil
	a.spec = filter.Spec{}
}

func (a *App) status() string {
	if a.session.Username != "" {
		return "@" + a.session.Username
	}
	if a.session.UserID != "" {
		return a.session.UserID
	}
	return "guest"
}

func (a *App) Run(ctx context.Context) {
	defer a.client.Close()

	// resume a persisted session, if any
	if sess, err := a.auth.Restore(ctx); err == nil {
		a.arm(sess)
		printlnFn("Welcome back,", a.status())
	}

	runREPL(ctx, a, a.status, bufio.NewScanner(os.Stdin))
}
