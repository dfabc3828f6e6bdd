package api

import (
	"fmt"
	"html/template"
	"path/filepath"
	"regexp"
	"time"

	"github.com/inkwelldev/inkwell/internal/blob"
	"github.com/inkwelldev/inkwell/internal/db"
	"github.com/inkwelldev/inkwell/internal/services"
	"gorm.io/gorm"
)

var passwordLengthRegex = regexp.MustCompile(`^.{8,}$`)
var passwordUpperRegex = regexp.MustCompile(`\p{Lu}`)
var passwordLowerRegex = regexp.MustCompile(`\p{Ll}`)
var passwordDigitRegex = regexp.MustCompile(`\d`)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	repositories *db.Repositories
	authService  *services.AuthService
	entries      *services.EntryService
	attachments  *services.AttachmentService
	templates    map[string]*template.Template
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)

func NewHandler(database *gorm.DB, secret string, templateDir string, location *time.Location, blobs blob.Store, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}

	funcMap := template.FuncMap{
		"formatDate": func(value time.Time) string {
			if value.IsZero() {
				return ""
			}
			return value.Format("January 2, 2006")
		},
	}

	templates := make(map[string]*template.Template)
	pages := []string{
		"signin",
		"signup",
		"entry_list",
		"entry_form",
		"entry_detail",
	}
	for _, page := range pages {
		parsed, err := template.New("base").Funcs(funcMap).ParseFiles(
			filepath.Join(templateDir, "base.html"),
			filepath.Join(templateDir, page+".html"),
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	repositories := db.NewRepositories(database)
	entryService := services.NewEntryService(repositories.Entries)

	return &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		repositories: repositories,
		authService:  services.NewAuthService(repositories.Users),
		entries:      entryService,
		attachments:  services.NewAttachmentService(blobs, entryService),
		templates:    templates,
	}, nil
}
