package database

// 持久化记录，与数据表一一对应，不会离开控制器层；
// 处理器只使用 resume 包中的传输对象。

// User 表示允许修改简历的账号。
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Disabled     bool   `gorm:"not null;default:false"`
}

// BasicInfo 表示一条自由格式的基本信息，例如姓名或邮箱。
type BasicInfo struct {
	ID    uint   `gorm:"primaryKey"`
	Fact  string `gorm:"uniqueIndex;size:255;not null"`
	Value string `gorm:"not null"`
}

// TableName 沿用早期部署使用的单数表名。
func (BasicInfo) TableName() string { return "basic_info" }

// Education 表示一段学历，由学校、学位与毕业年份唯一确定。
type Education struct {
	ID             uint    `gorm:"primaryKey"`
	Institution    string  `gorm:"uniqueIndex:idx_education_credential;size:255;not null"`
	Degree         string  `gorm:"uniqueIndex:idx_education_credential;size:255;not null"`
	GraduationDate int     `gorm:"uniqueIndex:idx_education_credential;not null"`
	GPA            float64 `gorm:"column:gpa"`
}

// TableName 沿用早期部署使用的单数表名。
func (Education) TableName() string { return "education" }

// Job 表示一段工作经历。描述与亮点只通过 JobID 引用它，
// 没有外键约束，删除工作不会删除其子项。
type Job struct {
	ID              uint   `gorm:"primaryKey"`
	Employer        string `gorm:"uniqueIndex;size:255;not null"`
	EmployerSummary string
	Location        string `gorm:"size:255"`
	JobTitle        string `gorm:"size:255;not null"`
	JobSummary      string
	Time            string `gorm:"size:128"`
}

// JobDetail 表示工作的一条描述。
type JobDetail struct {
	ID     uint   `gorm:"primaryKey"`
	JobID  uint   `gorm:"index;not null"`
	Detail string `gorm:"not null"`
}

// JobHighlight 表示工作的一条亮点。
type JobHighlight struct {
	ID        uint   `gorm:"primaryKey"`
	JobID     uint   `gorm:"index;not null"`
	Highlight string `gorm:"not null"`
}

// Certification 表示一项证书，可为有效、过期或进行中。
type Certification struct {
	ID       uint   `gorm:"primaryKey"`
	Cert     string `gorm:"uniqueIndex;size:128;not null"`
	FullName string `gorm:"size:255"`
	Time     string `gorm:"size:128"`
	Valid    bool
	Progress int
}

// Competency 表示不带等级的通用能力。
type Competency struct {
	ID         uint   `gorm:"primaryKey"`
	Competency string `gorm:"uniqueIndex;size:255;not null"`
}

// InterestType 表示兴趣类别，由 Migrate 预置。
type InterestType struct {
	ID           uint   `gorm:"primaryKey"`
	InterestType string `gorm:"uniqueIndex;size:32;not null"`
}

// Interest 恰好属于一个 InterestType。
type Interest struct {
	ID             uint         `gorm:"primaryKey"`
	Interest       string       `gorm:"uniqueIndex;size:255;not null"`
	InterestTypeID uint         `gorm:"index;not null"`
	InterestType   InterestType `gorm:"constraint:OnDelete:RESTRICT"`
}

// Preference 是偏好键值对，例如 EDITOR=vim。
type Preference struct {
	ID         uint   `gorm:"primaryKey"`
	Preference string `gorm:"uniqueIndex;size:255;not null"`
	Value      string `gorm:"not null"`
}

// SideProject 表示一个个人项目。
type SideProject struct {
	ID      uint   `gorm:"primaryKey"`
	Title   string `gorm:"uniqueIndex;size:255;not null"`
	Tagline string
	Link    string `gorm:"size:512"`
}

// SocialLink 指向某个平台上的个人主页。
type SocialLink struct {
	ID       uint   `gorm:"primaryKey"`
	Platform string `gorm:"uniqueIndex;size:64;not null"`
	Link     string `gorm:"size:512;not null"`
}

// Skill 表示带 0-100 等级的技能。
type Skill struct {
	ID    uint   `gorm:"primaryKey"`
	Skill string `gorm:"uniqueIndex;size:255;not null"`
	Level int    `gorm:"not null"`
}

// AllModels 按迁移顺序列出全部记录。
func AllModels() []any {
	return []any{
		&User{},
		&BasicInfo{},
		&Education{},
		&Job{},
		&JobDetail{},
		&JobHighlight{},
		&Certification{},
		&Competency{},
		&InterestType{},
		&Interest{},
		&Preference{},
		&SideProject{},
		&SocialLink{},
		&Skill{},
	}
}
