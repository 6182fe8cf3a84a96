package leave

import "github.com/cuti-management/backend/internal/user"

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		LeaveType:       l.LeaveType,
		LeaveTypeLabel:  l.LeaveType.Label(),
		StartDate:       formatDate(l.StartDate),
		EndDate:         formatDate(l.EndDate),
		Days:            l.Days,
		Reason:          l.Reason,
		Status:          l.Status,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt.UTC(),
	}
	if l.ApprovedBy != nil {
		approvedBy := l.ApprovedBy.String()
		resp.ApprovedBy = &approvedBy
	}
	if l.ApprovedAt != nil {
		approvedAt := l.ApprovedAt.UTC()
		resp.ApprovedAt = &approvedAt
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	out := make([]LeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, mapToResponse(l))
	}
	return out
}

func mapToAdminListResponse(leaves []LeaveRequest) []AdminLeaveResponse {
	out := make([]AdminLeaveResponse, 0, len(leaves))
	for _, l := range leaves {
		out = append(out, AdminLeaveResponse{
			LeaveResponse: mapToResponse(l),
			User:          toUserSummary(l.User),
		})
	}
	return out
}

func mapToDetailResponse(l LeaveRequest) LeaveDetailResponse {
	resp := LeaveDetailResponse{
		LeaveResponse: mapToResponse(l),
		User:          toUserSummary(l.User),
	}
	if l.Approver != nil {
		resp.ApprovedByUser = &ApproverSummary{
			ID:   l.Approver.ID.String(),
			Name: l.Approver.Name,
		}
	}
	return resp
}

func toUserSummary(u *user.User) *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID.String(),
		Name:       u.Name,
		Department: u.Department,
	}
}
