package model

type Repository struct {
	Owner    string
	Name     string
	Archived bool
}

func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}
