package postgres

const (
	TableProjects      = "projects"
	TableSkills        = "skills"
	TableProjectSkills = "project_skills"
	TableHobbies       = "hobbies"
	TableCourses       = "courses"
	TableProfile       = "profile"
	TableMessages      = "messages"
	TableAdminUsers    = "admin_users"
)

// ProjectSkills embeds a project's skills through the project_skills join table.
var ProjectSkills = Relation{
	Name:        TableProjectSkills,
	JoinTable:   TableProjectSkills,
	OwnerKey:    "project_id",
	TargetKey:   "skill_id",
	Target:      TableSkills,
	TargetName:  TableSkills,
	TargetOrder: []OrderBy{{Column: "display_order"}, {Column: "name"}},
}
