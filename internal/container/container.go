package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-registration/config"
	"github.com/oksasatya/go-user-registration/internal/domain/repository"
	"github.com/oksasatya/go-user-registration/internal/infrastructure/metrics"
	"github.com/oksasatya/go-user-registration/pkg/helpers"
)

// app-level container to share constructed components across packages
// Router can auto-wire modules from these singletons.

var (
	cfg    *config.Config
	logger *logrus.Logger

	users repository.UserRepository
	flash repository.FlashRepository

	rabbitPub *helpers.RabbitPublisher
	esClient  *elasticsearch.Client
	regStats  *metrics.Registration
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }

func SetUserRepository(r repository.UserRepository) { users = r }
func GetUserRepository() repository.UserRepository  { return users }
func SetFlashStore(f repository.FlashRepository)    { flash = f }
func GetFlashStore() repository.FlashRepository     { return flash }

func SetRabbitPub(p *helpers.RabbitPublisher) { rabbitPub = p }
func GetRabbitPub() *helpers.RabbitPublisher  { return rabbitPub }
func SetES(c *elasticsearch.Client)           { esClient = c }
func GetES() *elasticsearch.Client            { return esClient }

func SetMetrics(m *metrics.Registration) { regStats = m }
func GetMetrics() *metrics.Registration  { return regStats }
