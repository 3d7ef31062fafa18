package services

import (
	portsrepo "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/repositories"
	portssvc "github.com/cryptojournal/cryptojournal_backend/internal/core/ports/services"
	"github.com/cryptojournal/cryptojournal_backend/internal/platform/config"
)

// NewServiceContainer wires every service with its repositories and returns the
// container the handlers consume.
func NewServiceContainer(cfg *config.Config, repos *portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	accountSvc := NewAccountService(repos.AccountRepo)
	userSvc := NewUserService(repos.UserRepo, repos.AccountRepo, repos.TradeRepo, repos.JournalRepo, repos.TagRepo)

	return &portssvc.ServiceContainer{
		Account:     accountSvc,
		Trade:       NewTradeService(repos.TradeRepo, accountSvc),
		Stats:       NewStatsService(repos.TradeRepo),
		Journal:     NewJournalService(repos.JournalRepo),
		Tag:         NewTagService(repos.TagRepo),
		Feature:     NewFeatureService(repos.FeatureRepo),
		User:        userSvc,
		Token:       NewTokenService(cfg, userSvc),
		GoogleOAuth: NewGoogleOAuthService(cfg),
	}
}
