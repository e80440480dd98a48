package commands

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/yourusername/wabot/internal/errors"
	"github.com/yourusername/wabot/internal/store"
)

// PrayerTimings holds the daily prayer times as HH:MM strings
type PrayerTimings struct {
	Fajr    string
	Sunrise string
	Dhuhr   string
	Asr     string
	Maghrib string
	Isha    string
}

// PrayerService fetches prayer timings from an external provider
type PrayerService interface {
	TimingsByCity(ctx context.Context, city string) (*PrayerTimings, error)
}

type prayerCity struct {
	name string
	id   string
}

var prayerCities = []prayerCity{
	{"القاهرة", "Cairo"},
	{"الجيزة", "Giza"},
	{"الإسكندرية", "Alexandria"},
	{"أسيوط", "Asyut"},
	{"سوهاج", "Sohag"},
}

// PrayerCommand starts the prayer-times flow: a city menu, then the
// timings for the chosen city
type PrayerCommand struct {
	sessions store.SessionStore
	prayers  PrayerService
	loc      *time.Location
	now      func() time.Time
}

// NewPrayerCommand creates the prayer flow command
func NewPrayerCommand(sessions store.SessionStore, prayers PrayerService, loc *time.Location) *PrayerCommand {
	return &PrayerCommand{
		sessions: sessions,
		prayers:  prayers,
		loc:      loc,
		now:      time.Now,
	}
}

func (c *PrayerCommand) Name() string                        { return "الصلاة" }
func (c *PrayerCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *PrayerCommand) Help() string                        { return "مواقيت الصلاة" }

func (c *PrayerCommand) Execute(ctx *Context) (*Response, error) {
	var b strings.Builder
	b.WriteString("📍 *اختر محافظة لمعرفة مواقيت الصلاة:*\n\n")
	for i, city := range prayerCities {
		fmt.Fprintf(&b, "*%d.* %s\n", i+1, city.name)
	}
	b.WriteString("\n🔹 *اكتب الرقم لاختيار المحافظة.*")

	c.sessions.Set(ctx.Msg.Sender, ctx.Msg.Chat, store.StatePrayer)
	return NewResponse(b.String()), nil
}

// HandleCity resolves a numeric reply sent while the sender is on the city
// step, ending the flow. The session state is cleared even when the fetch
// fails so a stale state cannot swallow later numbers.
func (c *PrayerCommand) HandleCity(ctx *Context, n int) (*Response, error) {
	c.sessions.Clear(ctx.Msg.Sender, ctx.Msg.Chat)
	if n < 1 || n > len(prayerCities) {
		return NewResponse(InvalidSelectionReply), nil
	}
	city := prayerCities[n-1]

	ctx.Notify("⏳ جاري جلب مواقيت الصلاة... انتظر قليلاً")

	timings, err := c.prayers.TimingsByCity(ctx.Ctx, city.id)
	if err != nil {
		return nil, &errors.BotError{
			Type:          errors.ErrorTypeAPI,
			UserMessage:   "⚠️ حدث خطأ أثناء جلب مواقيت الصلاة. تأكد من اتصالك بالإنترنت وحاول مرة أخرى.",
			InternalError: err,
		}
	}

	today := c.now().In(c.loc)
	reply := fmt.Sprintf(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃    🕌 *مواقيت الصلاة* 🕌    ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

📍 *المدينة:* %s
📅 *التاريخ:* %s

⏰ *الفجر:* %s
🌅 *الشروق:* %s
☀️ *الظهر:* %s
🌇 *العصر:* %s
🌆 *المغرب:* %s
🌙 *العشاء:* %s
`,
		city.name,
		today.Format("2006/1/2"),
		format12Hour(timings.Fajr),
		format12Hour(timings.Sunrise),
		format12Hour(timings.Dhuhr),
		format12Hour(timings.Asr),
		format12Hour(timings.Maghrib),
		format12Hour(timings.Isha),
	)

	return NewResponse(reply), nil
}

// format12Hour converts an HH:MM timing to a 12-hour clock with the Arabic
// am/pm marker. Unparseable values pass through unchanged.
func format12Hour(timing string) string {
	parts := strings.SplitN(strings.TrimSpace(timing), ":", 2)
	if len(parts) != 2 {
		return timing
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return timing
	}
	minute, err := strconv.Atoi(strings.Fields(parts[1])[0])
	if err != nil {
		return timing
	}

	period := "ص"
	if hour >= 12 {
		period = "م"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, period)
}
