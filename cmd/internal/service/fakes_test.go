package service

import (
	"context"
	"errors"
	"sort"

	"shiftboard/cmd/internal/domain/entity"
	cognitoclient "shiftboard/cmd/internal/integration/aws/cognito"
)

type fakeScheduleRepo struct {
	schedules []*entity.Schedule
	nextID    int
	saveErr   error
}

func (f *fakeScheduleRepo) FindByID(id int) (*entity.Schedule, error) {
	for _, s := range f.schedules {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeScheduleRepo) FindByUserID(userId int) ([]*entity.Schedule, error) {
	var out []*entity.Schedule
	for _, s := range f.schedules {
		if s.UserID == userId {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartsAt < out[j].StartsAt })
	return out, nil
}

func (f *fakeScheduleRepo) Save(schedule *entity.Schedule) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	if schedule.ID == 0 {
		f.nextID++
		schedule.ID = f.nextID
	}
	f.schedules = append(f.schedules, schedule)
	return nil
}

type fakeReportRepo struct {
	reports []*entity.Report
	nextID  int
}

func (f *fakeReportRepo) ExistsByScheduleID(scheduleId int) (bool, error) {
	for _, r := range f.reports {
		if r.ScheduleID == scheduleId {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeReportRepo) FindMonthReports(monthStart, monthEnd int64) ([]*entity.Report, error) {
	var out []*entity.Report
	for _, r := range f.reports {
		if r.ActualStartsAt >= monthStart && r.ActualStartsAt < monthEnd {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ActualStartsAt < out[j].ActualStartsAt })
	return out, nil
}

func (f *fakeReportRepo) Save(report *entity.Report) error {
	if report.ID == 0 {
		f.nextID++
		report.ID = f.nextID
	}
	f.reports = append(f.reports, report)
	return nil
}

type fakeProfileRepo struct {
	profiles []*entity.Profile
	nextID   int
	findErr  error
}

func (f *fakeProfileRepo) FindByID(id int) (*entity.Profile, error) {
	for _, p := range f.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) FindBySub(sub string) (*entity.Profile, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	for _, p := range f.profiles {
		if p.SubUUID == sub {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) FindByEmail(email string) (*entity.Profile, error) {
	for _, p := range f.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) ExistsByEmail(email string) (bool, error) {
	p, _ := f.FindByEmail(email)
	return p != nil, nil
}

func (f *fakeProfileRepo) FindAll() ([]*entity.Profile, error) {
	out := append([]*entity.Profile(nil), f.profiles...)
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt < out[j].CreatedAt })
	return out, nil
}

func (f *fakeProfileRepo) Save(profile *entity.Profile) error {
	for _, p := range f.profiles {
		if p.ID == profile.ID {
			return nil
		}
	}
	f.nextID++
	profile.ID = f.nextID
	f.profiles = append(f.profiles, profile)
	return nil
}

func (f *fakeProfileRepo) Delete(profile *entity.Profile) error {
	for i, p := range f.profiles {
		if p.ID == profile.ID {
			f.profiles = append(f.profiles[:i], f.profiles[i+1:]...)
			return nil
		}
	}
	return errors.New("no such profile")
}

type fakeCognito struct {
	created []string
	deleted []string
	getErr  error
	user    *cognitoclient.Identity
}

func (f *fakeCognito) GetUser(ctx context.Context, accessToken string) (*cognitoclient.Identity, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.user, nil
}

func (f *fakeCognito) AdminCreateUser(ctx context.Context, email, fullName string) error {
	f.created = append(f.created, email)
	return nil
}

func (f *fakeCognito) AdminDeleteUser(ctx context.Context, email string) error {
	f.deleted = append(f.deleted, email)
	return nil
}

type fakeMailer struct {
	sent    []string
	sendErr error
}

func (f *fakeMailer) SendInvite(ctx context.Context, to, fullName, signinURL string) error {
	if f.sendErr != nil {
		return f.sendErr
	}
	f.sent = append(f.sent, to)
	return nil
}

type denyAllDirectory struct{}

func (denyAllDirectory) IsMember(context.Context, string) (bool, error) { return false, nil }
