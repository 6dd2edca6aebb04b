package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/TONNY-TED/Results-Management-System/internal/app/models"
	"github.com/TONNY-TED/Results-Management-System/internal/domain"
	"github.com/TONNY-TED/Results-Management-System/internal/pkg/apperrors"
)

type subjectKey struct {
	name     string
	courseID int64
}

type feeKey struct {
	program  string
	semester int
}

type resultKey struct {
	student  string
	semester int
	subject  int64
}

type enrollKey struct {
	student string
	class   int64
}

// memStore implements every domain store in memory. Slot locks are real mutexes
// keyed like the advisory locks of the PostgreSQL store.
type memStore struct {
	mu sync.Mutex

	nextID      int64
	students    map[string]*models.Student
	courses     map[string]*models.Course
	subjects    map[subjectKey]*models.Subject
	instructors map[string]*models.Instructor
	semesters   map[int]*models.Semester
	assignments map[[2]int64]bool
	classes     []*models.ClassSlot
	enrollments map[enrollKey]bool
	fees        map[feeKey]*models.FeeStructure
	payments    []*models.Payment
	results     map[resultKey]*models.ResultRecord
	sups        []*models.SupplementaryExam

	// sumErr makes SumPayments fail, to exercise storage error paths
	sumErr error
	// registerErr fails the next RegisterSemester before anything is written
	registerErr error

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex
}

var (
	_ domain.StudentStore = (*memStore)(nil)
	_ domain.CatalogStore = (*memStore)(nil)
	_ domain.ClassStore   = (*memStore)(nil)
	_ domain.FeeStore     = (*memStore)(nil)
	_ domain.PaymentStore = (*memStore)(nil)
	_ domain.ResultStore  = (*memStore)(nil)
)

func newMemStore() *memStore {
	return &memStore{
		students:    map[string]*models.Student{},
		courses:     map[string]*models.Course{},
		subjects:    map[subjectKey]*models.Subject{},
		instructors: map[string]*models.Instructor{},
		semesters:   map[int]*models.Semester{},
		assignments: map[[2]int64]bool{},
		enrollments: map[enrollKey]bool{},
		fees:        map[feeKey]*models.FeeStructure{},
		results:     map[resultKey]*models.ResultRecord{},
		locks:       map[string]*sync.Mutex{},
	}
}

func (m *memStore) id() int64 {
	m.nextID++
	return m.nextID
}

func (m *memStore) UpsertStudent(_ context.Context, name, number, program string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.students[number]; ok {
		if s.Program == "" {
			s.Program = program
		}
		cp := *s
		return &cp, nil
	}
	s := &models.Student{ID: m.id(), StudentNumber: number, Name: name, Program: program, CurrentSemester: 1}
	m.students[number] = s
	cp := *s
	return &cp, nil
}

func (m *memStore) GetStudentByNumber(_ context.Context, number string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[number]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) SetProgram(_ context.Context, number, program string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[number]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	s.Program = program
	cp := *s
	return &cp, nil
}

// RegisterSemester applies the increment and the semester row together, or neither
func (m *memStore) RegisterSemester(_ context.Context, number string) (*models.Student, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.students[number]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	if err := m.registerErr; err != nil {
		m.registerErr = nil
		return nil, err
	}
	s.CurrentSemester++
	if _, ok := m.semesters[s.CurrentSemester]; !ok {
		m.semesters[s.CurrentSemester] = &models.Semester{ID: m.id(), Number: s.CurrentSemester}
	}
	cp := *s
	return &cp, nil
}

func (m *memStore) UpsertCourse(_ context.Context, name string) (*models.Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.courses[name]
	if !ok {
		c = &models.Course{ID: m.id(), Name: name}
		m.courses[name] = c
	}
	return c, nil
}

func (m *memStore) UpsertSubject(_ context.Context, name string, courseID int64) (*models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := subjectKey{name, courseID}
	s, ok := m.subjects[k]
	if !ok {
		s = &models.Subject{ID: m.id(), Name: name, CourseID: courseID}
		m.subjects[k] = s
	}
	return s, nil
}

func (m *memStore) UpsertInstructor(_ context.Context, name, number string) (*models.Instructor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	i, ok := m.instructors[number]
	if !ok {
		i = &models.Instructor{ID: m.id(), InstructorNumber: number, Name: name}
		m.instructors[number] = i
	}
	return i, nil
}

func (m *memStore) UpsertSemester(_ context.Context, number int) (*models.Semester, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.semesters[number]
	if !ok {
		s = &models.Semester{ID: m.id(), Number: number}
		m.semesters[number] = s
	}
	return s, nil
}

func (m *memStore) subjectByID(id int64) *models.Subject {
	for _, s := range m.subjects {
		if s.ID == id {
			return s
		}
	}
	return nil
}

func (m *memStore) instructorByID(id int64) *models.Instructor {
	for _, i := range m.instructors {
		if i.ID == id {
			return i
		}
	}
	return nil
}

func (m *memStore) AssignInstructor(_ context.Context, subjectID, instructorID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.subjectByID(subjectID) == nil {
		return apperrors.ErrSubjectNotFound
	}
	if m.instructorByID(instructorID) == nil {
		return apperrors.ErrInstructorNotFound
	}
	m.assignments[[2]int64{subjectID, instructorID}] = true
	return nil
}

func (m *memStore) GetSubject(_ context.Context, id int64) (*models.Subject, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s := m.subjectByID(id); s != nil {
		return s, nil
	}
	return nil, apperrors.ErrSubjectNotFound
}

func (m *memStore) GetInstructor(_ context.Context, id int64) (*models.Instructor, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := m.instructorByID(id); i != nil {
		return i, nil
	}
	return nil, apperrors.ErrInstructorNotFound
}

// memSlotTx runs against memStore while the caller holds the slot locks
type memSlotTx struct{ m *memStore }

func (t memSlotTx) RoomBooked(_ context.Context, room, day, timeSlot string) (bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, c := range t.m.classes {
		if c.Room == room && c.Day == day && c.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (t memSlotTx) InstructorBooked(_ context.Context, instructorID int64, day, timeSlot string) (bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	for _, c := range t.m.classes {
		if c.InstructorID == instructorID && c.Day == day && c.TimeSlot == timeSlot {
			return true, nil
		}
	}
	return false, nil
}

func (t memSlotTx) InstructorAssigned(_ context.Context, subjectID, instructorID int64) (bool, error) {
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	return t.m.assignments[[2]int64{subjectID, instructorID}], nil
}

func (t memSlotTx) InsertClass(_ context.Context, slot *models.ClassSlot) (int64, error) {
	// widen the window between check and insert so unlocked races would show
	time.Sleep(time.Millisecond)
	t.m.mu.Lock()
	defer t.m.mu.Unlock()
	c := *slot
	c.ID = t.m.id()
	t.m.classes = append(t.m.classes, &c)
	return c.ID, nil
}

func (m *memStore) keyLock(key string) *sync.Mutex {
	m.locksMu.Lock()
	defer m.locksMu.Unlock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	return l
}

func (m *memStore) WithSlotLocks(ctx context.Context, keys []string, fn func(ctx context.Context, tx domain.SlotTx) error) error {
	for _, k := range keys {
		l := m.keyLock(k)
		l.Lock()
		defer l.Unlock()
	}
	return fn(ctx, memSlotTx{m})
}

func (m *memStore) GetClass(_ context.Context, id int64) (*models.ClassSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.classes {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, apperrors.ErrClassNotFound
}

func (m *memStore) ListClasses(_ context.Context, f models.ClassFilter) ([]*models.ClassSlot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.ClassSlot{}
	for _, c := range m.classes {
		if (f.SemesterNumber > 0 && c.SemesterNumber != f.SemesterNumber) ||
			(f.Day != "" && c.Day != f.Day) ||
			(f.InstructorID > 0 && c.InstructorID != f.InstructorID) ||
			(f.Room != "" && c.Room != f.Room) {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

func (m *memStore) Enroll(_ context.Context, studentNumber string, classID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[studentNumber]; !ok {
		return false, apperrors.ErrStudentNotFound
	}
	found := false
	for _, c := range m.classes {
		found = found || c.ID == classID
	}
	if !found {
		return false, apperrors.ErrClassNotFound
	}
	k := enrollKey{studentNumber, classID}
	if m.enrollments[k] {
		return false, nil
	}
	m.enrollments[k] = true
	return true, nil
}

func (m *memStore) ListEnrollments(_ context.Context, classID int64) ([]models.Enrollment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Enrollment
	for k := range m.enrollments {
		if k.class == classID {
			out = append(out, models.Enrollment{StudentNumber: k.student, ClassSlotID: k.class})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StudentNumber < out[j].StudentNumber })
	return out, nil
}

func (m *memStore) UpsertFeeStructure(_ context.Context, fee *models.FeeStructure) (*models.FeeStructure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := feeKey{fee.Program, fee.Semester}
	saved := *fee
	if prev, ok := m.fees[k]; ok {
		saved.ID = prev.ID
	} else {
		saved.ID = m.id()
	}
	m.fees[k] = &saved
	cp := saved
	return &cp, nil
}

func (m *memStore) GetFeeStructure(_ context.Context, program string, semester int) (*models.FeeStructure, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, ok := m.fees[feeKey{program, semester}]
	if !ok {
		return nil, apperrors.ErrNoFeeStructure
	}
	cp := *f
	return &cp, nil
}

func (m *memStore) InsertPayment(_ context.Context, p *models.Payment) (*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *p
	saved.ID = m.id()
	m.payments = append(m.payments, &saved)
	cp := saved
	return &cp, nil
}

func (m *memStore) SumPayments(_ context.Context, studentNumber string, semester int) (float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sumErr != nil {
		return 0, apperrors.NewStorageError("sum payments", m.sumErr)
	}
	total := 0.0
	for _, p := range m.payments {
		if p.StudentNumber == studentNumber && p.Semester == semester {
			total += p.Amount
		}
	}
	return total, nil
}

func (m *memStore) ListPayments(_ context.Context, studentNumber string) ([]*models.Payment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*models.Payment{}
	for _, p := range m.payments {
		if p.StudentNumber == studentNumber {
			out = append(out, p)
		}
	}
	return out, nil
}

func (m *memStore) upsertResultLocked(r *models.ResultRecord) *models.ResultRecord {
	k := resultKey{r.StudentNumber, r.SemesterNumber, r.SubjectID}
	saved := *r
	if prev, ok := m.results[k]; ok {
		saved.ID = prev.ID
	} else {
		saved.ID = m.id()
	}
	m.results[k] = &saved
	cp := saved
	return &cp
}

func (m *memStore) UpsertResult(_ context.Context, r *models.ResultRecord) (*models.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[r.StudentNumber]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return m.upsertResultLocked(r), nil
}

func (m *memStore) RecordSupplementary(_ context.Context, sup *models.SupplementaryExam, grade string) (*models.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.students[sup.StudentNumber]; !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	sup.ID = m.id()
	sup.CreatedAt = time.Now()
	cp := *sup
	m.sups = append(m.sups, &cp)
	return m.upsertResultLocked(&models.ResultRecord{
		StudentNumber:  sup.StudentNumber,
		SemesterNumber: sup.SemesterNumber,
		SubjectID:      sup.SubjectID,
		Marks:          sup.Marks,
		Grade:          grade,
	}), nil
}

func (m *memStore) ListResults(_ context.Context, studentNumber string, semester int) ([]models.ResultRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ResultRecord
	for _, r := range m.results {
		if r.StudentNumber != studentNumber || (semester != models.AllSemesters && r.SemesterNumber != semester) {
			continue
		}
		rec := *r
		if s := m.subjectByID(r.SubjectID); s != nil {
			rec.SubjectName = s.Name
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SemesterNumber != out[j].SemesterNumber {
			return out[i].SemesterNumber < out[j].SemesterNumber
		}
		return out[i].SubjectName < out[j].SubjectName
	})
	return out, nil
}

// fixedClock returns a clock stuck at t
func fixedClock(t time.Time) domain.Clock {
	return func() time.Time { return t }
}

// testServices wires every service over one memStore
func testServices(m *memStore) *Services {
	catalog := NewCatalogService(m, m)
	ledger := NewLedgerService(m, m, m, LedgerOptions{
		Clock: fixedClock(time.Date(2024, 3, 15, 14, 30, 0, 0, time.UTC)),
	})
	return &Services{
		Catalog:    catalog,
		Scheduling: NewSchedulingService(m, m, m),
		Ledger:     ledger,
		Results:    NewResultsService(catalog, m, ledger),
	}
}
