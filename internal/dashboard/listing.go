package dashboard

import (
	"slices"
	"strings"

	"gitlab.com/yelinaung/freelance-ledger/internal/models"
)

// RecentLimit is how many projects the dashboard lists.
const RecentLimit = 5

// ProjectFilter selects projects for listing. Zero fields match everything.
type ProjectFilter struct {
	Query       string
	Status      models.ProjectStatus
	ServiceType models.ServiceType
}

// Matches reports whether p passes the filter. The query matches the title
// case-insensitively.
func (f ProjectFilter) Matches(p models.Project) bool {
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.ServiceType != "" && p.ServiceType != f.ServiceType {
		return false
	}
	return containsFold(p.Title, f.Query)
}

// FilterProjects returns the matching projects, most recently updated first.
func FilterProjects(projects []models.Project, filter ProjectFilter) []models.Project {
	out := make([]models.Project, 0, len(projects))
	for i := range projects {
		if filter.Matches(projects[i]) {
			out = append(out, projects[i])
		}
	}
	slices.SortStableFunc(out, func(a, b models.Project) int {
		return b.UpdatedAt.Compare(a.UpdatedAt)
	})
	return out
}

// RecentProjects returns up to limit projects whose title matches query,
// most recently updated first. A non-positive limit returns them all.
func RecentProjects(projects []models.Project, query string, limit int) []models.Project {
	out := FilterProjects(projects, ProjectFilter{Query: query})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// ServiceTypes returns the distinct service types in use, in order of first
// occurrence.
func ServiceTypes(projects []models.Project) []models.ServiceType {
	out := []models.ServiceType{}
	for i := range projects {
		if !slices.Contains(out, projects[i].ServiceType) {
			out = append(out, projects[i].ServiceType)
		}
	}
	return out
}

// FilterClients returns clients whose name, company or email contains query,
// sorted by name.
func FilterClients(clients []models.Client, query string) []models.Client {
	out := make([]models.Client, 0, len(clients))
	for i := range clients {
		c := &clients[i]
		if containsFold(c.Name, query) || containsFold(c.Company, query) || containsFold(c.Email, query) {
			out = append(out, *c)
		}
	}
	slices.SortStableFunc(out, func(a, b models.Client) int {
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	})
	return out
}

// ClientProjects returns the projects that reference clientID.
func ClientProjects(projects []models.Project, clientID string) []models.Project {
	out := []models.Project{}
	for i := range projects {
		if projects[i].ClientID == clientID {
			out = append(out, projects[i])
		}
	}
	return out
}

// ProjectCountByClient counts projects per client ID.
func ProjectCountByClient(projects []models.Project) map[string]int {
	counts := make(map[string]int)
	for i := range projects {
		counts[projects[i].ClientID]++
	}
	return counts
}

// ClientName resolves a client ID to its name, or models.UnknownClientName.
func ClientName(clientID string, clients []models.Client) string {
	for i := range clients {
		if clients[i].ID == clientID {
			return clients[i].Name
		}
	}
	return models.UnknownClientName
}

func containsFold(s, query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(query))
}
