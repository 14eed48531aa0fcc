package grpc

import (
	"context"

	"github.com/SE-UUlm/snowballr-mock-backend/internal/api"
	"google.golang.org/grpc"
)

// unary adapts a typed handler method to a grpc.MethodDesc. Errors coming
// back from the handler are translated into status errors.
func unary[Req, Resp any](name string, call func(*GRPCServer, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			handler := func(ctx context.Context, req any) (any, error) {
				resp, err := call(srv.(*GRPCServer), ctx, req.(*Req))
				if err != nil {
					return nil, toStatus(err)
				}
				return resp, nil
			}
			if interceptor == nil {
				return handler(ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: api.FullMethod(name)}
			return interceptor(ctx, in, info, handler)
		},
	}
}

var serviceDesc = grpc.ServiceDesc{
	ServiceName: api.ServiceName,
	HandlerType: (*any)(nil),
	Streams:     []grpc.StreamDesc{},
	Metadata:    "snowballr.proto",
	Methods: []grpc.MethodDesc{
		unary(api.MethodGetAvailableFetcherApis, (*GRPCServer).GetAvailableFetcherApis),

		unary(api.MethodRegister, (*GRPCServer).Register),
		unary(api.MethodLogin, (*GRPCServer).Login),
		unary(api.MethodLogout, (*GRPCServer).Logout),
		unary(api.MethodIsAuthenticated, (*GRPCServer).IsAuthenticated),
		unary(api.MethodRenewSession, (*GRPCServer).RenewSession),
		unary(api.MethodRequestPasswordReset, (*GRPCServer).RequestPasswordReset),
		unary(api.MethodResetPassword, (*GRPCServer).ResetPassword),
		unary(api.MethodChangePassword, (*GRPCServer).ChangePassword),

		unary(api.MethodGetAllUsers, (*GRPCServer).GetAllUsers),
		unary(api.MethodGetCurrentUser, (*GRPCServer).GetCurrentUser),
		unary(api.MethodGetUserById, (*GRPCServer).GetUserById),
		unary(api.MethodGetUserByEmail, (*GRPCServer).GetUserByEmail),
		unary(api.MethodUpdateUser, (*GRPCServer).UpdateUser),
		unary(api.MethodSoftDeleteUser, (*GRPCServer).SoftDeleteUser),
		unary(api.MethodSoftUndeleteUser, (*GRPCServer).SoftUndeleteUser),

		unary(api.MethodGetAllPapersToReview, (*GRPCServer).GetAllPapersToReview),
		unary(api.MethodGetPapersToReviewForProject, (*GRPCServer).GetPapersToReviewForProject),

		unary(api.MethodGetUserSettings, (*GRPCServer).GetUserSettings),
		unary(api.MethodUpdateUserSettings, (*GRPCServer).UpdateUserSettings),

		unary(api.MethodGetReadingList, (*GRPCServer).GetReadingList),
		unary(api.MethodIsPaperOnReadingList, (*GRPCServer).IsPaperOnReadingList),
		unary(api.MethodAddPaperToReadingList, (*GRPCServer).AddPaperToReadingList),
		unary(api.MethodRemovePaperFromReadingList, (*GRPCServer).RemovePaperFromReadingList),

		unary(api.MethodGetPendingInvitationsForUser, (*GRPCServer).GetPendingInvitationsForUser),
		unary(api.MethodInviteUserToProject, (*GRPCServer).InviteUserToProject),
		unary(api.MethodGetPendingInvitationsForProject, (*GRPCServer).GetPendingInvitationsForProject),
		unary(api.MethodAcceptProjectInvitation, (*GRPCServer).AcceptProjectInvitation),
		unary(api.MethodDeclineProjectInvitation, (*GRPCServer).DeclineProjectInvitation),
		unary(api.MethodGetProjectMembers, (*GRPCServer).GetProjectMembers),
		unary(api.MethodRemoveProjectMember, (*GRPCServer).RemoveProjectMember),
		unary(api.MethodChangeProjectMemberRole, (*GRPCServer).ChangeProjectMemberRole),

		unary(api.MethodGetAllProjects, (*GRPCServer).GetAllProjects),
		unary(api.MethodGetAllDeletedProjects, (*GRPCServer).GetAllDeletedProjects),
		unary(api.MethodGetAllArchivedProjects, (*GRPCServer).GetAllArchivedProjects),
		unary(api.MethodGetAllProjectsForUser, (*GRPCServer).GetAllProjectsForUser),
		unary(api.MethodGetAllDeletedProjectsForUser, (*GRPCServer).GetAllDeletedProjectsForUser),
		unary(api.MethodGetAllArchivedProjectsForUser, (*GRPCServer).GetAllArchivedProjectsForUser),
		unary(api.MethodCreateProject, (*GRPCServer).CreateProject),
		unary(api.MethodGetProjectById, (*GRPCServer).GetProjectById),
		unary(api.MethodUpdateProject, (*GRPCServer).UpdateProject),
		unary(api.MethodExportProject, (*GRPCServer).ExportProject),
		unary(api.MethodSoftDeleteProject, (*GRPCServer).SoftDeleteProject),
		unary(api.MethodSoftUndeleteProject, (*GRPCServer).SoftUndeleteProject),
		unary(api.MethodGetProjectStatistics, (*GRPCServer).GetProjectStatistics),

		unary(api.MethodGetCriterionById, (*GRPCServer).GetCriterionById),
		unary(api.MethodGetAllCriteriaForProject, (*GRPCServer).GetAllCriteriaForProject),
		unary(api.MethodCreateCriterion, (*GRPCServer).CreateCriterion),
		unary(api.MethodUpdateCriterion, (*GRPCServer).UpdateCriterion),
		unary(api.MethodDeleteCriterion, (*GRPCServer).DeleteCriterion),

		unary(api.MethodGetProjectPaperById, (*GRPCServer).GetProjectPaperById),
		unary(api.MethodGetAllProjectPapersForProject, (*GRPCServer).GetAllProjectPapersForProject),
		unary(api.MethodAddPaperToProject, (*GRPCServer).AddPaperToProject),
		unary(api.MethodUpdateProjectPaper, (*GRPCServer).UpdateProjectPaper),
		unary(api.MethodRemovePaperFromProject, (*GRPCServer).RemovePaperFromProject),

		unary(api.MethodGetReviewById, (*GRPCServer).GetReviewById),
		unary(api.MethodGetAllReviewsForProjectPaper, (*GRPCServer).GetAllReviewsForProjectPaper),
		unary(api.MethodCreateReview, (*GRPCServer).CreateReview),
		unary(api.MethodUpdateReview, (*GRPCServer).UpdateReview),
		unary(api.MethodDeleteReview, (*GRPCServer).DeleteReview),

		unary(api.MethodGetPaperById, (*GRPCServer).GetPaperById),
		unary(api.MethodCreatePaper, (*GRPCServer).CreatePaper),
		unary(api.MethodUpdatePaper, (*GRPCServer).UpdatePaper),
		unary(api.MethodGetForwardReferencedPapers, (*GRPCServer).GetForwardReferencedPapers),
		unary(api.MethodGetBackwardReferencedPapers, (*GRPCServer).GetBackwardReferencedPapers),
		unary(api.MethodGetPaperPdf, (*GRPCServer).GetPaperPdf),
		unary(api.MethodSetPaperPdf, (*GRPCServer).SetPaperPdf),
	},
}
