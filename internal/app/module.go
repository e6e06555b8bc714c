package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/cineconnect/sponsorpay/internal/app/api/server"
	"github.com/cineconnect/sponsorpay/internal/app/service/application"
	notificationlog "github.com/cineconnect/sponsorpay/internal/app/service/notification_log"
	"github.com/cineconnect/sponsorpay/internal/app/service/payment"
	"github.com/cineconnect/sponsorpay/internal/app/service/reconciler"
	"github.com/cineconnect/sponsorpay/internal/app/service/statistics"
	"github.com/cineconnect/sponsorpay/internal/platform/db"
	"github.com/cineconnect/sponsorpay/pkg/config"
	"github.com/cineconnect/sponsorpay/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	application.Module,
	notificationlog.Module,
	statistics.Module,
	payment.Module,
	reconciler.Module,
)
