package rest

const (
	// api
	RouteApi = "/api"

	// auth
	RouteAuth       = RouteApi + "/auth"
	RouteRegister   = RouteAuth + "/register"
	RouteLogin      = RouteAuth + "/login"
	RouteCheckEmail = RouteAuth + "/check-email"
	RouteCheckCPF   = RouteAuth + "/check-cpf"

	// users
	RouteUsers        = RouteApi + "/users"
	RouteUsersSearch  = RouteUsers + "/search"
	RouteUsersDeleted = RouteUsers + "/deleted"
	RouteUser         = RouteUsers + "/:id"
	RouteUserRestore  = RouteUser + "/restore"

	// ops
	RouteHealth  = RouteApi + "/healthz"
	RouteMetrics = RouteApi + "/metrics"
)
