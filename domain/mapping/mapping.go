package mapping

// Table is the identity/channel translation table: OpenProject user names to
// Rocket.Chat user names, and project identifiers to Rocket.Chat channels.
// It is built once at startup and never mutated afterwards, so concurrent
// reads need no synchronization. A reload replaces the whole Table.
type Table struct {
	users          map[string]string
	projects       map[string]string
	defaultChannel string
}

func New(users, projects map[string]string, defaultChannel string) *Table {
	copiedUsers := make(map[string]string, len(users))
	for k, v := range users {
		copiedUsers[k] = v
	}
	copiedProjects := make(map[string]string, len(projects))
	for k, v := range projects {
		copiedProjects[k] = v
	}
	return &Table{
		users:          copiedUsers,
		projects:       copiedProjects,
		defaultChannel: defaultChannel,
	}
}

// RocketChatUser returns the Rocket.Chat user name mapped to an OpenProject
// user name, or false when no mapping exists.
func (t *Table) RocketChatUser(opUser string) (string, bool) {
	rcUser, ok := t.users[opUser]
	return rcUser, ok
}

// Channel returns the Rocket.Chat channel for a project. An empty or unmapped
// project resolves to the default channel, never an error.
func (t *Table) Channel(project string) string {
	if project == "" {
		return t.defaultChannel
	}
	if channel, ok := t.projects[project]; ok {
		return channel
	}
	return t.defaultChannel
}

func (t *Table) DefaultChannel() string {
	return t.defaultChannel
}

func (t *Table) UserCount() int {
	return len(t.users)
}

func (t *Table) ProjectCount() int {
	return len(t.projects)
}
