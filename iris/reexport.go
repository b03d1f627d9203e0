package iris

import root "github.com/iris-hq/iris-golang"

type (
	// Core client/config.
	Client       = root.Client
	Config       = root.Config
	ConfigParams = root.ConfigParams
	Logger       = root.Logger

	RequestHook  = root.RequestHook
	ResponseHook = root.ResponseHook

	// Gateway surface.
	Auth           = root.Auth
	AuthStrategy   = root.AuthStrategy
	RequestOptions = root.RequestOptions
	FileUpload     = root.FileUpload

	// Resource APIs.
	LeadsAPI        = root.LeadsAPI
	AgentsAPI       = root.AgentsAPI
	WorkflowsAPI    = root.WorkflowsAPI
	BloqsAPI        = root.BloqsAPI
	IntegrationsAPI = root.IntegrationsAPI
	CoursesAPI      = root.CoursesAPI
	AutomationsAPI  = root.AutomationsAPI
	CallsAPI        = root.CallsAPI

	// Models.
	PaginatedResponse[T any] = root.PaginatedResponse[T]

	Lead                = root.Lead
	ScoredLead          = root.ScoredLead
	Agent               = root.Agent
	WorkflowRun         = root.WorkflowRun
	WorkflowRunState    = root.WorkflowRunState
	RunStatus           = root.RunStatus
	Bloq                = root.Bloq
	BloqDocument        = root.BloqDocument
	BloqSearchResult    = root.BloqSearchResult
	IntegrationProvider = root.IntegrationProvider
	Integration         = root.Integration
	Course              = root.Course
	Automation          = root.Automation
	Call                = root.Call
	StartCallParams     = root.StartCallParams
	SendEmailParams     = root.SendEmailParams
	ListLeadsParams     = root.ListLeadsParams

	// Errors.
	APIError               = root.APIError
	BadRequestError        = root.BadRequestError
	AuthenticationError    = root.AuthenticationError
	NotFoundError          = root.NotFoundError
	ValidationError        = root.ValidationError
	RateLimitError         = root.RateLimitError
	ServerError            = root.ServerError
	MalformedResponseError = root.MalformedResponseError
	LocalError             = root.LocalError
)

const (
	AuthPublic            = root.AuthPublic
	AuthUserToken         = root.AuthUserToken
	AuthClientCredentials = root.AuthClientCredentials

	RunPending   = root.RunPending
	RunRunning   = root.RunRunning
	RunCompleted = root.RunCompleted
	RunFailed    = root.RunFailed
	RunCancelled = root.RunCancelled
)

var (
	ErrMissingAPIKey            = root.ErrMissingAPIKey
	ErrMissingClientCredentials = root.ErrMissingClientCredentials
)

func NewClient(apiKey string, userID int64, baseURL string, timeoutSeconds float64, maxRetries int) (*Client, error) {
	return root.NewClient(apiKey, userID, baseURL, timeoutSeconds, maxRetries)
}

func NewClientWithParams(params ConfigParams) (*Client, error) {
	return root.NewClientWithParams(params)
}

func NewClientWithConfig(cfg Config) (*Client, error) {
	return root.NewClientWithConfig(cfg)
}

func LoadConfig(apiKey string, userID int64, baseURL string, timeoutSeconds float64, maxRetries int) (Config, error) {
	return root.LoadConfig(apiKey, userID, baseURL, timeoutSeconds, maxRetries)
}

func LoadConfigWithParams(params ConfigParams) (Config, error) {
	return root.LoadConfigWithParams(params)
}

func LoadConfigFile(path string) (ConfigParams, error) {
	return root.LoadConfigFile(path)
}
