package api

import (
	"github.com/qazaqstep/qazaqstep/internal/auth"
	"github.com/qazaqstep/qazaqstep/internal/clock"
	"github.com/qazaqstep/qazaqstep/internal/db"
	"github.com/qazaqstep/qazaqstep/internal/services"
)

type Server struct {
	DB         *db.DB
	Clock      clock.Clock
	Tokens     *auth.TokenIssuer
	Auth       services.AuthService
	Lessons    services.LessonService
	Vocabulary services.VocabularyService
	Placement  services.PlacementService
	Badges     services.BadgeService
	Analytics  services.AnalyticsService
	StaticDir  string
}
