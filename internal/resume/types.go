// Package resume 定义 HTTP API 的请求与响应结构。
// 控制器边界负责它们与持久化记录之间的转换。
package resume

// BasicInfoItem 表示一条基本信息，例如 {"fact":"name","value":"John Jacobs"}。
type BasicInfoItem struct {
	ID    uint   `json:"id,omitempty"`
	Fact  string `json:"fact" binding:"required,max=255"`
	Value string `json:"value" binding:"required"`
}

// Education 表示一段学历。
type Education struct {
	ID             uint    `json:"id,omitempty"`
	Institution    string  `json:"institution" binding:"required,max=255"`
	Degree         string  `json:"degree" binding:"required,max=255"`
	GraduationDate int     `json:"graduation_date" binding:"required,min=1900,max=2200"`
	GPA            float64 `json:"gpa" binding:"min=0,max=5"`
}

// EducationHistory 包装学历列表。
type EducationHistory struct {
	History []Education `json:"history"`
}

// Job 是职位的写入载荷，描述与亮点单独维护。
type Job struct {
	ID              uint   `json:"id,omitempty"`
	Employer        string `json:"employer" binding:"required,max=255"`
	EmployerSummary string `json:"employer_summary"`
	Location        string `json:"location" binding:"max=255"`
	JobTitle        string `json:"job_title" binding:"required,max=255"`
	JobSummary      string `json:"job_summary"`
	Time            string `json:"time" binding:"max=128"`
}

// JobDetail 是职位的一条描述，ID 为 0 时新建。
type JobDetail struct {
	ID     uint   `json:"id,omitempty"`
	JobID  uint   `json:"job_id" binding:"required"`
	Detail string `json:"detail" binding:"required"`
}

// JobHighlight 是职位的一条亮点，ID 为 0 时新建。
type JobHighlight struct {
	ID        uint   `json:"id,omitempty"`
	JobID     uint   `json:"job_id" binding:"required"`
	Highlight string `json:"highlight" binding:"required"`
}

// JobEntry 是职位及其子项的组合读取结果。
type JobEntry struct {
	Job
	Details    []JobDetailEntry    `json:"details"`
	Highlights []JobHighlightEntry `json:"highlights"`
}

// JobDetailEntry 是嵌套在 JobEntry 中的描述。
type JobDetailEntry struct {
	ID     uint   `json:"id"`
	Detail string `json:"detail"`
}

// JobHighlightEntry 是嵌套在 JobEntry 中的亮点。
type JobHighlightEntry struct {
	ID        uint   `json:"id"`
	Highlight string `json:"highlight"`
}

// JobHistory 包装工作经历列表。
type JobHistory struct {
	Experience []JobEntry `json:"experience"`
}

// Certification 表示一项证书，可为当前有效、已过期或进行中。
type Certification struct {
	ID       uint   `json:"id,omitempty"`
	Cert     string `json:"cert" binding:"required,max=128"`
	FullName string `json:"full_name" binding:"max=255"`
	Time     string `json:"time" binding:"max=128"`
	Valid    bool   `json:"valid"`
	Progress int    `json:"progress" binding:"min=0,max=100"`
}

// CertificationHistory 包装证书列表。
type CertificationHistory struct {
	CertificationHistory []Certification `json:"certification_history"`
}

// Competency 表示一项通用能力。
type Competency struct {
	ID         uint   `json:"id,omitempty"`
	Competency string `json:"competency" binding:"required,max=255"`
}

// Competencies 包装能力项名称。
type Competencies struct {
	Competencies []string `json:"competencies"`
}

// Interest 是兴趣的写入载荷，类别来自路径。
type Interest struct {
	ID       uint   `json:"id,omitempty"`
	Interest string `json:"interest" binding:"required,max=255"`
	Category string `json:"category,omitempty"`
}

// Interests 按类别分组兴趣名称。
type Interests struct {
	Personal  []string `json:"personal"`
	Technical []string `json:"technical"`
}

// Preference 是偏好键值对，例如 {"preference":"EDITOR","value":"vim"}。
type Preference struct {
	ID         uint   `json:"id,omitempty"`
	Preference string `json:"preference" binding:"required,max=255"`
	Value      string `json:"value" binding:"required"`
}

// SideProject 表示一个个人项目。
type SideProject struct {
	ID      uint   `json:"id,omitempty"`
	Title   string `json:"title" binding:"required,max=255"`
	Tagline string `json:"tagline"`
	Link    string `json:"link" binding:"omitempty,url,max=512"`
}

// SideProjects 包装个人项目列表。
type SideProjects struct {
	Projects []SideProject `json:"projects"`
}

// SocialLink 指向个人主页，例如 {"platform":"github","link":"https://github.com/me"}。
type SocialLink struct {
	ID       uint   `json:"id,omitempty"`
	Platform string `json:"platform" binding:"required,max=64"`
	Link     string `json:"link" binding:"required,url,max=512"`
}

// Skill 的 level 取值 0 到 100。
type Skill struct {
	ID    uint   `json:"id,omitempty"`
	Skill string `json:"skill" binding:"required,max=255"`
	Level int    `json:"level" binding:"min=0,max=100"`
}

// Skills 包装技能列表。
type Skills struct {
	Skills []Skill `json:"skills"`
}

// User 是账号的对外视图，不含密码哈希。
type User struct {
	Username string `json:"username"`
	Disabled bool   `json:"disabled"`
}

// Users 包装账号列表。
type Users struct {
	Users []User `json:"users"`
}

// Token 由 POST /token 返回。
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// FullResume 是根路径返回的聚合文档。
type FullResume struct {
	BasicInfo      map[string]string    `json:"basic_info"`
	Education      EducationHistory     `json:"education"`
	Experience     JobHistory           `json:"experience"`
	Certifications CertificationHistory `json:"certifications"`
	SideProjects   SideProjects         `json:"side_projects"`
	Interests      Interests            `json:"interests"`
	SocialLinks    map[string]string    `json:"social_links"`
	Skills         Skills               `json:"skills"`
	Competencies   Competencies         `json:"competencies"`
	Preferences    map[string]string    `json:"preferences"`
}
