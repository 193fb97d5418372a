package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/jasonmoraesteodoro/tmmarinhosports/database"
	"github.com/jasonmoraesteodoro/tmmarinhosports/models"
	"github.com/jasonmoraesteodoro/tmmarinhosports/utils"
)

type StudentHandler struct{}

func NewStudentHandler() *StudentHandler { return &StudentHandler{} }

type studentPayload struct {
	FullName         string   `json:"full_name"         validate:"required,max=120"`
	Phone            string   `json:"phone"             validate:"required,max=20"`
	RG               string   `json:"rg"                validate:"max=20"`
	BirthDate        string   `json:"birth_date"        validate:"omitempty,datetime=2006-01-02"`
	StartDate        string   `json:"start_date"        validate:"required,datetime=2006-01-02"`
	Status           string   `json:"status"            validate:"required,oneof=active inactive"`
	MonthlyFee       float64  `json:"monthly_fee"       validate:"gte=0"`
	Notes            string   `json:"notes"`
	Address          string   `json:"address"`
	ResponsibleName  string   `json:"responsible_name"  validate:"max=120"`
	ResponsiblePhone string   `json:"responsible_phone" validate:"max=20"`
	ClassIDs         []string `json:"class_ids"         validate:"dive,uuid4"`
}

func (p *studentPayload) normalize() {
	p.FullName = strings.Join(strings.Fields(p.FullName), " ")
	p.Phone = strings.TrimSpace(p.Phone)
	p.RG = strings.TrimSpace(p.RG)
	p.BirthDate = strings.TrimSpace(p.BirthDate)
	p.StartDate = strings.TrimSpace(p.StartDate)
	p.Status = strings.TrimSpace(p.Status)
	p.ResponsibleName = strings.Join(strings.Fields(p.ResponsibleName), " ")
	p.ResponsiblePhone = strings.TrimSpace(p.ResponsiblePhone)
}

func (p *studentPayload) apply(s *models.Student) {
	s.FullName = p.FullName
	s.Phone = utils.CleanPhone(p.Phone)
	s.RG = utils.CleanRG(p.RG)
	s.StartDate = p.StartDate
	s.Status = p.Status
	s.MonthlyFee = p.MonthlyFee
	s.Notes = p.Notes
	s.Address = p.Address
	s.ResponsibleName = p.ResponsibleName
	s.ResponsiblePhone = utils.CleanPhone(p.ResponsiblePhone)
	s.BirthDate = nil
	if p.BirthDate != "" {
		if b, err := time.Parse("2006-01-02", p.BirthDate); err == nil {
			s.BirthDate = &b
		}
	}
}

// loadClassIDs fills the transient ClassIDs field on each student.
func loadClassIDs(account string, students []models.Student) error {
	if len(students) == 0 {
		return nil
	}
	var rows []models.StudentClass
	if err := database.DB.Where("account_id = ?", account).Find(&rows).Error; err != nil {
		return err
	}
	byStudent := map[string][]string{}
	for _, r := range rows {
		byStudent[r.StudentID] = append(byStudent[r.StudentID], r.ClassID)
	}
	for i := range students {
		students[i].ClassIDs = byStudent[students[i].ID]
		if students[i].ClassIDs == nil {
			students[i].ClassIDs = []string{}
		}
	}
	return nil
}

// replaceClassMemberships swaps the student's membership set inside tx.
func replaceClassMemberships(tx *gorm.DB, account, studentID string, classIDs []string) error {
	if err := tx.Where("student_id = ? AND account_id = ?", studentID, account).
		Delete(&models.StudentClass{}).Error; err != nil {
		return err
	}
	if len(classIDs) == 0 {
		return nil
	}
	rows := make([]models.StudentClass, 0, len(classIDs))
	for _, cid := range classIDs {
		rows = append(rows, models.StudentClass{StudentID: studentID, ClassID: cid, AccountID: account})
	}
	return tx.Create(&rows).Error
}

// GET /students?q=&status=&class_id=&page=&size=
func (h *StudentHandler) List(c echo.Context) error {
	account := accountID(c)
	q := strings.TrimSpace(c.QueryParam("q"))
	status := strings.TrimSpace(c.QueryParam("status"))
	classID := strings.TrimSpace(c.QueryParam("class_id"))

	page := atoiOr(c.QueryParam("page"), 1)
	if page < 1 {
		page = 1
	}
	size := atoiOr(c.QueryParam("size"), 20)
	if size < 1 {
		size = 1
	} else if size > 100 {
		size = 100
	}

	tx := database.DB.Model(&models.Student{}).Where("students.account_id = ?", account)
	if q != "" {
		like := "%" + q + "%"
		// Phone and rg are stored digits-only, so match those on the
		// digits of the search term ("12.345" finds rg "123456789").
		if digits := utils.CleanRG(q); digits != "" {
			dlike := "%" + digits + "%"
			tx = tx.Where("full_name ILIKE ? OR phone LIKE ? OR rg LIKE ?", like, dlike, dlike)
		} else {
			tx = tx.Where("full_name ILIKE ?", like)
		}
	}
	if status != "" {
		tx = tx.Where("students.status = ?", status)
	}
	if classID != "" {
		tx = tx.Joins("JOIN student_classes sc ON sc.student_id = students.id").
			Where("sc.class_id = ?", classID)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_COUNT_FAILED"})
	}
	var items []models.Student
	if err := tx.Order("created_at ASC").Limit(size).Offset((page - 1) * size).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	if err := loadClassIDs(account, items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"data":  items,
		"page":  page,
		"size":  size,
		"total": total,
	})
}

// GET /students/:id
func (h *StudentHandler) Get(c echo.Context) error {
	account := accountID(c)
	var s models.Student
	if err := database.DB.First(&s, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	items := []models.Student{s}
	if err := loadClassIDs(account, items); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items[0])
}

// POST /students
func (h *StudentHandler) Create(c echo.Context) error {
	account := accountID(c)
	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	s := models.Student{AccountID: account}
	p.apply(&s)

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&s).Error; err != nil {
			return err
		}
		return replaceClassMemberships(tx, account, s.ID, p.ClassIDs)
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	s.ClassIDs = p.ClassIDs
	if s.ClassIDs == nil {
		s.ClassIDs = []string{}
	}
	return c.JSON(http.StatusCreated, s)
}

// PUT /students/:id
func (h *StudentHandler) Update(c echo.Context) error {
	account := accountID(c)
	var existing models.Student
	if err := database.DB.First(&existing, "id = ? AND account_id = ?", c.Param("id"), account).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "NOT_FOUND"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}

	var p studentPayload
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "INVALID_PAYLOAD"})
	}
	p.normalize()
	if err := validate.Struct(&p); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{"error": "VALIDATION_ERROR", "fields": fieldErrors(err)})
	}

	p.apply(&existing)
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&existing).Error; err != nil {
			return err
		}
		return replaceClassMemberships(tx, account, existing.ID, p.ClassIDs)
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	existing.ClassIDs = p.ClassIDs
	if existing.ClassIDs == nil {
		existing.ClassIDs = []string{}
	}
	return c.JSON(http.StatusOK, existing)
}

// DELETE /students/:id
// Removes the student together with their payments and class memberships.
func (h *StudentHandler) Delete(c echo.Context) error {
	account := accountID(c)
	id := c.Param("id")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("student_id = ? AND account_id = ?", id, account).
			Delete(&models.Payment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("student_id = ? AND account_id = ?", id, account).
			Delete(&models.StudentClass{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Student{}, "id = ? AND account_id = ?", id, account).Error
	})
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.NoContent(http.StatusNoContent)
}

// GET /students/:id/payments
func (h *StudentHandler) Payments(c echo.Context) error {
	var items []models.Payment
	err := database.DB.
		Where("student_id = ? AND account_id = ?", c.Param("id"), accountID(c)).
		Order("month_year ASC").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}

// GET /students/:id/classes
func (h *StudentHandler) Classes(c echo.Context) error {
	account := accountID(c)
	var items []models.Class
	err := database.DB.
		Joins("JOIN student_classes sc ON sc.class_id = classes.id").
		Where("sc.student_id = ? AND classes.account_id = ?", c.Param("id"), account).
		Order("classes.created_at ASC").
		Find(&items).Error
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "DB_QUERY_FAILED"})
	}
	return c.JSON(http.StatusOK, items)
}
