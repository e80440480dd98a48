package commands

import (
	"fmt"
	"strings"

	"github.com/yourusername/wabot/internal/store"
)

// InvalidSelectionReply is sent when a menu number does not fit the
// sender's live flow
const InvalidSelectionReply = "⚠️ الرقم الذي أدخلته غير صحيح أو غير مرتبط بأي أمر حالي. يرجى التأكد من استخدام الأوامر الصحيحة."

type countryCategory struct {
	name      string
	countries []string
}

var countryCategories = []countryCategory{
	{"🌍 الدول العربية", []string{
		"🇪🇬 مصر", "🇸🇦 السعودية", "🇦🇪 الإمارات", "🇲🇦 المغرب", "🇹🇳 تونس",
		"🇩🇿 الجزائر", "🇮🇶 العراق", "🇯🇴 الأردن", "🇱🇧 لبنان", "🇱🇾 ليبيا",
	}},
	{"🌍 الدول الأوروبية", []string{
		"🇬🇧 بريطانيا", "🇫🇷 فرنسا", "🇩🇪 ألمانيا", "🇮🇹 إيطاليا", "🇪🇸 إسبانيا",
		"🇳🇱 هولندا", "🇧🇪 بلجيكا", "🇸🇪 السويد", "🇳🇴 النرويج", "🇨🇭 سويسرا",
	}},
	{"🌎 الدول الأمريكية", []string{
		"🇺🇸 الولايات المتحدة", "🇨🇦 كندا", "🇧🇷 البرازيل", "🇦🇷 الأرجنتين", "🇲🇽 المكسيك",
		"🇨🇱 تشيلي", "🇨🇴 كولومبيا", "🇵🇪 بيرو", "🇻🇪 فنزويلا", "🇺🇾 أوروغواي",
	}},
	{"🌏 الدول الآسيوية", []string{
		"🇨🇳 الصين", "🇯🇵 اليابان", "🇰🇷 كوريا الجنوبية", "🇮🇳 الهند", "🇮🇩 إندونيسيا",
		"🇲🇾 ماليزيا", "🇸🇬 سنغافورة", "🇹🇭 تايلاند", "🇻🇳 فيتنام", "🇵🇭 الفلبين",
	}},
	{"🌍 الدول الأفريقية", []string{
		"🇿🇦 جنوب أفريقيا", "🇳🇬 نيجيريا", "🇰🇪 كينيا", "🇪🇹 إثيوبيا", "🇬🇭 غانا",
		"🇸🇳 السنغال", "🇹🇿 تنزانيا", "🇺🇬 أوغندا", "🇿🇲 زامبيا", "🇨🇲 الكاميرون",
	}},
}

// countryProfiles holds the detailed country write-ups, selected by the
// number sent while the sender's flow state is the country step
var countryProfiles = []string{
	`
*🇪🇬 جمهورية مصر العربية*

🏛️ *العاصمة:* القاهرة
👥 *عدد السكان:* حوالي 104 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الجنيه المصري

🏺 *نبذة تاريخية:*
مصر هي مهد الحضارة الفرعونية القديمة التي تأسست حوالي 3100 قبل الميلاد. تضم أهرامات الجيزة وأبو الهول، من عجائب الدنيا السبع القديمة.

🌊 *معالم سياحية:*
• الأهرامات وأبو الهول
• المتحف المصري
• نهر النيل
• الأقصر والكرنك
• سيناء وشرم الشيخ

🍽️ *أشهر الأطعمة:*
• الكشري
• الملوخية
• الفول المدمس
• الكباب والكفتة
`,
	`
*🇸🇦 المملكة العربية السعودية*

🏛️ *العاصمة:* الرياض
👥 *عدد السكان:* حوالي 35 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الريال السعودي

🕋 *نبذة تاريخية:*
تأسست المملكة العربية السعودية الحديثة على يد الملك عبد العزيز آل سعود عام 1932م. تضم مكة المكرمة والمدينة المنورة، أقدس المدن الإسلامية.

🏙️ *معالم سياحية:*
• المسجد الحرام في مكة
• المسجد النبوي في المدينة
• الدرعية التاريخية
• العلا ومدائن صالح
• كورنيش جدة

🍽️ *أشهر الأطعمة:*
• الكبسة
• المندي
• المطازيز
• الجريش
`,
	`
*🇦🇪 دولة الإمارات العربية المتحدة*

🏛️ *العاصمة:* أبوظبي
👥 *عدد السكان:* حوالي 10 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* درهم إماراتي

🏜️ *نبذة تاريخية:*
تأسست دولة الإمارات العربية المتحدة في 2 ديسمبر 1971م كاتحاد لسبع إمارات. شهدت تطوراً هائلاً خلال العقود الأخيرة لتصبح مركزاً اقتصادياً عالمياً.

🏙️ *معالم سياحية:*
• برج خليفة (أطول برج في العالم)
• متحف اللوفر أبوظبي
• جزيرة ياس
• دبي مول
• جزيرة النخلة

🍽️ *أشهر الأطعمة:*
• المجبوس
• الهريس
• اللقيمات
• البرياني الإماراتي
`,
	`
*🇲🇦 المملكة المغربية*

🏛️ *العاصمة:* الرباط
👥 *عدد السكان:* حوالي 37 مليون نسمة
🗣️ *اللغات الرسمية:* العربية والأمازيغية
💰 *العملة:* الدرهم المغربي

🏯 *نبذة تاريخية:*
المغرب من أقدم الدول في شمال أفريقيا، مع تاريخ غني من الحضارات المتعاقبة من الفينيقيين إلى الرومان والعرب والأمازيغ.

🏞️ *معالم سياحية:*
• مدينة مراكش القديمة
• مدينة فاس العتيقة
• الصحراء الكبرى
• جبال الأطلس
• شفشاون المدينة الزرقاء

🍽️ *أشهر الأطعمة:*
• الطاجين
• الكسكس
• البسطيلة
• الحريرة
`,
	`
*🇹🇳 الجمهورية التونسية*

🏛️ *العاصمة:* تونس
👥 *عدد السكان:* حوالي 12 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الدينار التونسي

🏛️ *نبذة تاريخية:*
تونس لها تاريخ عريق يمتد لآلاف السنين، حيث كانت موطناً للحضارة القرطاجية وجزءاً من الإمبراطورية الرومانية قبل الفتح الإسلامي.

🏖️ *معالم سياحية:*
• موقع قرطاج الأثري
• مدينة سيدي بوسعيد
• جزيرة جربة
• المدينة العتيقة في تونس
• الصحراء التونسية

🍽️ *أشهر الأطعمة:*
• الكسكسي
• البريك
• الطاجين التونسي
• المقرونة بالملوخية
`,
	`
*🇩🇿 الجمهورية الجزائرية الديمقراطية الشعبية*

🏛️ *العاصمة:* الجزائر
👥 *عدد السكان:* حوالي 44 مليون نسمة
🗣️ *اللغات الرسمية:* العربية والأمازيغية
💰 *العملة:* الدينار الجزائري

🏜️ *نبذة تاريخية:*
الجزائر من أكبر دول أفريقيا، لها تاريخ غني بالحضارات المختلفة. نالت استقلالها من فرنسا عام 1962 بعد ثورة تحرير دامت ثماني سنوات.

🏞️ *معالم سياحية:*
• قصبة الجزائر (موقع تراث عالمي)
• تيمقاد الرومانية
• الهقار والطاسيلي
• شواطئ عنابة وجيجل
• الواحات الصحراوية

🍽️ *أشهر الأطعمة:*
• الشخشوخة
• الكسكس الجزائري
• الطاجين
• المحاجب
`,
	`
*🇮🇶 جمهورية العراق*

🏛️ *العاصمة:* بغداد
👥 *عدد السكان:* حوالي 41 مليون نسمة
🗣️ *اللغات الرسمية:* العربية والكردية
💰 *العملة:* الدينار العراقي

🏺 *نبذة تاريخية:*
العراق هو مهد حضارة بلاد ما بين النهرين (سومر وبابل وآشور)، ويعتبر أحد أقدم مراكز الحضارة في العالم.

🏯 *معالم سياحية:*
• المدائن (طاق كسرى)
• موقع بابل الأثري
• الأهوار العراقية
• زقورة أور
• المتحف العراقي

🍽️ *أشهر الأطعمة:*
• المسكوف
• الدولمة
• الكبة العراقية
• القيمة
`,
	`
*🇯🇴 المملكة الأردنية الهاشمية*

🏛️ *العاصمة:* عمّان
👥 *عدد السكان:* حوالي 10 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الدينار الأردني

🏛️ *نبذة تاريخية:*
الأردن أرض تاريخية تضم آثاراً من الحضارات النبطية والرومانية والبيزنطية والإسلامية. تأسست المملكة الحديثة عام 1946.

🏞️ *معالم سياحية:*
• مدينة البتراء الوردية
• وادي رم
• جرش الرومانية
• البحر الميت
• قلعة عجلون

🍽️ *أشهر الأطعمة:*
• المنسف
• المقلوبة
• الكنافة النابلسية
• المحاشي
`,
	`
*🇱🇧 الجمهورية اللبنانية*

🏛️ *العاصمة:* بيروت
👥 *عدد السكان:* حوالي 6.8 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الليرة اللبنانية

🌲 *نبذة تاريخية:*
لبنان موطن الحضارة الفينيقية القديمة وملتقى الحضارات والثقافات عبر التاريخ. اشتهر قديماً بأرز لبنان الذي يزين علمه.

🏞️ *معالم سياحية:*
• قلعة بعلبك
• مغارة جعيتا
• أرز الرب
• بيبلوس القديمة
• شواطئ جونية

🍽️ *أشهر الأطعمة:*
• التبولة
• الحمص
• الفتوش
• الكبة النية
• المنقوشة
`,
	`
*🇱🇾 دولة ليبيا*

🏛️ *العاصمة:* طرابلس
👥 *عدد السكان:* حوالي 7 مليون نسمة
🗣️ *اللغة الرسمية:* العربية
💰 *العملة:* الدينار الليبي

🏜️ *نبذة تاريخية:*
ليبيا أرض تعاقبت عليها حضارات عدة كالفينيقيين والإغريق والرومان والعرب والعثمانيين. تمتلك أكبر احتياطي نفطي في أفريقيا.

🏛️ *معالم سياحية:*
• لبدة الكبرى
• شحات (قورينا)
• جبال أكاكوس
• قلعة السرايا الحمراء
• الصحراء الليبية

🍽️ *أشهر الأطعمة:*
• البازين
• المبخرة
• الشوربة الليبية
• المقروض
`,
	`
*🇺🇸 الولايات المتحدة الأمريكية*

🏛️ *العاصمة:* واشنطن العاصمة
👥 *عدد السكان:* حوالي 331 مليون نسمة
🗣️ *اللغة الرسمية:* الإنجليزية (على مستوى الولايات تختلف)
💰 *العملة:* الدولار الأمريكي

🏛️ *نبذة تاريخية:*
تأسست الولايات المتحدة في عام 1776 بعد إعلان الاستقلال عن بريطانيا. وهي تتكون من 50 ولاية وتعتبر من أكبر القوى الاقتصادية والعسكرية في العالم.

🏙️ *معالم سياحية:*
• تمثال الحرية في نيويورك
• البيت الأبيض في واشنطن
• جسر البوابة الذهبية في سان فرانسيسكو
• حديقة يلوستون الوطنية
• شلالات نياجرا

🍽️ *أشهر الأطعمة:*
• الهامبرغر
• البيتزا الأمريكية
• الهوت دوج
• الكعك بالقيقب
`,
	`
*🇨🇳 جمهورية الصين الشعبية*

🏛️ *العاصمة:* بكين
👥 *عدد السكان:* حوالي 1.4 مليار نسمة
🗣️ *اللغة الرسمية:* الصينية الماندرين
💰 *العملة:* اليوان الصيني (رنمينبي)

🏯 *نبذة تاريخية:*
الصين من أقدم الحضارات في العالم مع تاريخ يمتد لأكثر من 5000 عام. أسست جمهورية الصين الشعبية عام 1949، وأصبحت ثاني أكبر اقتصاد في العالم.

🏞️ *معالم سياحية:*
• سور الصين العظيم
• المدينة المحرمة في بكين
• جيش التيراكوتا في شيان
• شنغهاي بمبانيها الشاهقة
• الأراضي الغامضة في التبت

🍽️ *أشهر الأطعمة:*
• البط المحمر
• الدمبلنج (الجياوزي)
• الأرز المقلي
• الماهوتونج (القدر الساخن)
`,
	`
*🇬🇧 المملكة المتحدة لبريطانيا العظمى وأيرلندا الشمالية*

🏛️ *العاصمة:* لندن
👥 *عدد السكان:* حوالي 68 مليون نسمة
🗣️ *اللغة الرسمية:* الإنجليزية
💰 *العملة:* الجنيه الإسترليني

⚔️ *نبذة تاريخية:*
بريطانيا لها تاريخ غني من الملوك والملكات. كانت إمبراطورية عالمية في القرن 19 و20، وهي اليوم من الدول المتقدمة وعضو دائم في مجلس الأمن.

🏰 *معالم سياحية:*
• قصر باكنغهام
• ساعة بيج بن
• برج لندن
• ستونهنج
• جامعتي أكسفورد وكامبريدج

🍽️ *أشهر الأطعمة:*
• الفيش آند تشيبس
• الفطور الإنجليزي الكامل
• فطيرة الراعي
• البودينغ اليوركشاير
`,
	`
*🇫🇷 الجمهورية الفرنسية*

🏛️ *العاصمة:* باريس
👥 *عدد السكان:* حوالي 67 مليون نسمة
🗣️ *اللغة الرسمية:* الفرنسية
💰 *العملة:* اليورو

🏰 *نبذة تاريخية:*
فرنسا من أكبر الدول الأوروبية وذات تاريخ غني بالثورات والفنون. شهدت الثورة الفرنسية عام 1789 التي غيرت وجه أوروبا والعالم.

🏙️ *معالم سياحية:*
• برج إيفل
• متحف اللوفر
• قصر فرساي
• كاتدرائية نوتردام
• الريفييرا الفرنسية

🍽️ *أشهر الأطعمة:*
• الكرواسون
• الفوا جرا
• الرتاتوي
• البوياباسي
• السوفليه
`,
	`
*🇩🇪 جمهورية ألمانيا الاتحادية*

🏛️ *العاصمة:* برلين
👥 *عدد السكان:* حوالي 83 مليون نسمة
🗣️ *اللغة الرسمية:* الألمانية
💰 *العملة:* اليورو

🏰 *نبذة تاريخية:*
ألمانيا بلد ذو تاريخ حافل، من إمبراطورية قوية إلى الانقسام بعد الحرب العالمية الثانية ثم إعادة التوحيد في 1990. اليوم هي قوة اقتصادية رائدة في أوروبا.

🏙️ *معالم سياحية:*
• بوابة براندنبورغ
• سور برلين
• قلعة نويشفانشتاين
• كاتدرائية كولونيا
• الغابة السوداء

🍽️ *أشهر الأطعمة:*
• النقانق الألمانية (فورست)
• البريتزل
• شنيتزل
• الزاوركراوت
• الكعك الأسود
`,
}

// CultureCommand starts the country-information flow: a category menu,
// then a country menu, then the country write-up. The steps between menus
// are carried by the sender's session state.
type CultureCommand struct {
	sessions store.SessionStore
}

// NewCultureCommand creates the culture flow command
func NewCultureCommand(sessions store.SessionStore) *CultureCommand {
	return &CultureCommand{sessions: sessions}
}

func (c *CultureCommand) Name() string                        { return "ثقافة" }
func (c *CultureCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *CultureCommand) Help() string                        { return "عرض معلومات عن دول مختلفة" }

func (c *CultureCommand) Execute(ctx *Context) (*Response, error) {
	var b strings.Builder
	b.WriteString(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃         🌐 *فئات الدول* 🌐          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

`)
	for i, category := range countryCategories {
		fmt.Fprintf(&b, "*%d.* %s\n", i+1, category.name)
	}
	b.WriteString("\n🔹 *اختر رقم الفئة لعرض الدول.*")

	c.sessions.Set(ctx.Msg.Sender, ctx.Msg.Chat, store.StateCategory)
	return NewResponse(b.String()), nil
}

// HandleCategory resolves a numeric reply sent while the sender is on the
// category step, advancing them to the country step
func (c *CultureCommand) HandleCategory(ctx *Context, n int) (*Response, error) {
	if n < 1 || n > len(countryCategories) {
		c.sessions.Clear(ctx.Msg.Sender, ctx.Msg.Chat)
		return NewResponse(InvalidSelectionReply), nil
	}

	var b strings.Builder
	b.WriteString(`
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃         📍 *قائمة الدول* 📍         ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

`)
	for i, country := range countryCategories[n-1].countries {
		fmt.Fprintf(&b, "*%d.* %s\n", i+1, country)
	}
	b.WriteString("\n🔹 *اكتب رقم الدولة لمعرفة معلوماتها.*")

	c.sessions.Set(ctx.Msg.Sender, ctx.Msg.Chat, store.StateCulture)
	return NewResponse(b.String()), nil
}

// HandleCountry resolves a numeric reply sent while the sender is on the
// country step, ending the flow
func (c *CultureCommand) HandleCountry(ctx *Context, n int) (*Response, error) {
	c.sessions.Clear(ctx.Msg.Sender, ctx.Msg.Chat)
	if n < 1 || n > len(countryProfiles) {
		return NewResponse(InvalidSelectionReply), nil
	}
	return NewResponse(countryProfiles[n-1]), nil
}
