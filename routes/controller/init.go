package controller

import (
	"github.com/veldwork/veld/routes"
)

func InitializeRoute(context *routes.RouterContext) {
	bindIndexController(context)
	bindReviewController(context)
	bindNewReviewController(context)
	bindUserController(context)

	bindLoginController(context)
	bindLogoutController(context)
	bindRegisterController(context)
	bindSettingController(context)

	bindMaintenanceNoticeController(context)
	bindShutdownNoticeController(context)
	bindPrivateNoticeController(context)
}
