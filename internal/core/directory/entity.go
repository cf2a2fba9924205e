package directory

// Company は会社エンティティです。所属する担当者を保持します。
type Company struct {
	ID       string
	Name     string
	Location string
	Website  *string
	LinkedIn *string
	Industry *string
	People   []*Person
}

// Person は会社に所属する担当者エンティティです。
type Person struct {
	ID           string
	Name         string
	Designation  string
	Emails       []string
	PhoneNumbers []string
	LinkedIn     *string
}

// FindPerson は ID で担当者を検索します。見つからない場合は nil を返します。
func (c *Company) FindPerson(id string) *Person {
	for _, p := range c.People {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// FindPersonByName は名前の完全一致で担当者を検索します。
// 同名の担当者が複数いる場合は登録順で最初の 1 件を返します。
func (c *Company) FindPersonByName(name string) *Person {
	for _, p := range c.People {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// PrimaryEmail は担当者の先頭のメールアドレスを返します。未登録の場合は空文字です。
func (p *Person) PrimaryEmail() string {
	if len(p.Emails) == 0 {
		return ""
	}
	return p.Emails[0]
}

// CloneCompany は会社エンティティのディープコピーを返します。
func CloneCompany(c *Company) *Company {
	if c == nil {
		return nil
	}
	clone := *c
	clone.Website = cloneString(c.Website)
	clone.LinkedIn = cloneString(c.LinkedIn)
	clone.Industry = cloneString(c.Industry)
	if c.People != nil {
		clone.People = make([]*Person, 0, len(c.People))
		for _, p := range c.People {
			clone.People = append(clone.People, ClonePerson(p))
		}
	}
	return &clone
}

// ClonePerson は担当者エンティティのディープコピーを返します。
func ClonePerson(p *Person) *Person {
	if p == nil {
		return nil
	}
	clone := *p
	clone.LinkedIn = cloneString(p.LinkedIn)
	if p.Emails != nil {
		clone.Emails = append([]string(nil), p.Emails...)
	}
	if p.PhoneNumbers != nil {
		clone.PhoneNumbers = append([]string(nil), p.PhoneNumbers...)
	}
	return &clone
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	clone := *s
	return &clone
}
