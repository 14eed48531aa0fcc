// Package api defines the SnowballR wire contract shared by the server and
// the client: the service and method names and the request and reply
// messages. Messages travel as JSON through the codec registered here.
package api

// ServiceName is the fully qualified gRPC service name.
const ServiceName = "snowballr.SnowballR"

// FullMethod returns the "/service/method" path of method.
func FullMethod(method string) string {
	return "/" + ServiceName + "/" + method
}

const (
	MethodGetAvailableFetcherApis = "GetAvailableFetcherApis"

	MethodRegister             = "Register"
	MethodLogin                = "Login"
	MethodLogout               = "Logout"
	MethodIsAuthenticated      = "IsAuthenticated"
	MethodRenewSession         = "RenewSession"
	MethodRequestPasswordReset = "RequestPasswordReset"
	MethodResetPassword        = "ResetPassword"
	MethodChangePassword       = "ChangePassword"

	MethodGetAllUsers      = "GetAllUsers"
	MethodGetCurrentUser   = "GetCurrentUser"
	MethodGetUserById      = "GetUserById"
	MethodGetUserByEmail   = "GetUserByEmail"
	MethodUpdateUser       = "UpdateUser"
	MethodSoftDeleteUser   = "SoftDeleteUser"
	MethodSoftUndeleteUser = "SoftUndeleteUser"

	MethodGetAllPapersToReview        = "GetAllPapersToReview"
	MethodGetPapersToReviewForProject = "GetPapersToReviewForProject"

	MethodGetUserSettings    = "GetUserSettings"
	MethodUpdateUserSettings = "UpdateUserSettings"

	MethodGetReadingList             = "GetReadingList"
	MethodIsPaperOnReadingList       = "IsPaperOnReadingList"
	MethodAddPaperToReadingList      = "AddPaperToReadingList"
	MethodRemovePaperFromReadingList = "RemovePaperFromReadingList"

	MethodGetPendingInvitationsForUser    = "GetPendingInvitationsForUser"
	MethodInviteUserToProject             = "InviteUserToProject"
	MethodGetPendingInvitationsForProject = "GetPendingInvitationsForProject"
	MethodAcceptProjectInvitation         = "AcceptProjectInvitation"
	MethodDeclineProjectInvitation        = "DeclineProjectInvitation"
	MethodGetProjectMembers               = "GetProjectMembers"
	MethodRemoveProjectMember             = "RemoveProjectMember"
	MethodChangeProjectMemberRole         = "ChangeProjectMemberRole"

	MethodGetAllProjects                = "GetAllProjects"
	MethodGetAllDeletedProjects         = "GetAllDeletedProjects"
	MethodGetAllArchivedProjects        = "GetAllArchivedProjects"
	MethodGetAllProjectsForUser         = "GetAllProjectsForUser"
	MethodGetAllDeletedProjectsForUser  = "GetAllDeletedProjectsForUser"
	MethodGetAllArchivedProjectsForUser = "GetAllArchivedProjectsForUser"
	MethodCreateProject                 = "CreateProject"
	MethodGetProjectById                = "GetProjectById"
	MethodUpdateProject                 = "UpdateProject"
	MethodExportProject                 = "ExportProject"
	MethodSoftDeleteProject             = "SoftDeleteProject"
	MethodSoftUndeleteProject           = "SoftUndeleteProject"
	MethodGetProjectStatistics          = "GetProjectStatistics"

	MethodGetCriterionById         = "GetCriterionById"
	MethodGetAllCriteriaForProject = "GetAllCriteriaForProject"
	MethodCreateCriterion          = "CreateCriterion"
	MethodUpdateCriterion          = "UpdateCriterion"
	MethodDeleteCriterion          = "DeleteCriterion"

	MethodGetProjectPaperById           = "GetProjectPaperById"
	MethodGetAllProjectPapersForProject = "GetAllProjectPapersForProject"
	MethodAddPaperToProject             = "AddPaperToProject"
	MethodUpdateProjectPaper            = "UpdateProjectPaper"
	MethodRemovePaperFromProject        = "RemovePaperFromProject"

	MethodGetReviewById                = "GetReviewById"
	MethodGetAllReviewsForProjectPaper = "GetAllReviewsForProjectPaper"
	MethodCreateReview                 = "CreateReview"
	MethodUpdateReview                 = "UpdateReview"
	MethodDeleteReview                 = "DeleteReview"

	MethodGetPaperById                = "GetPaperById"
	MethodCreatePaper                 = "CreatePaper"
	MethodUpdatePaper                 = "UpdatePaper"
	MethodGetForwardReferencedPapers  = "GetForwardReferencedPapers"
	MethodGetBackwardReferencedPapers = "GetBackwardReferencedPapers"
	MethodGetPaperPdf                 = "GetPaperPdf"
	MethodSetPaperPdf                 = "SetPaperPdf"
)

// Unauthenticated lists the methods callable without a session.
var Unauthenticated = []string{
	MethodLogin,
	MethodRegister,
	MethodIsAuthenticated,
	MethodRenewSession,
	MethodRequestPasswordReset,
	MethodResetPassword,
}
