package constant

// Permission names recognized by the directory. Absence of a grant row means denied.
const (
	PermissionManageChatbots    = "manage_chatbots"
	PermissionManageDepartments = "manage_departments"
	PermissionManageSettings    = "manage_settings"
	PermissionManageKnowledge   = "manage_knowledge"
	PermissionViewAllSessions   = "view_all_sessions"
)

func KnownPermissions() []string {
	return []string{
		PermissionManageChatbots,
		PermissionManageDepartments,
		PermissionManageSettings,
		PermissionManageKnowledge,
		PermissionViewAllSessions,
	}
}
