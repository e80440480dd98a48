package commands

// menuCommand sends a static command list after a short preparing notice
type menuCommand struct {
	name string
	wait string
	body string
	help string
}

func (c *menuCommand) Name() string                        { return c.name }
func (c *menuCommand) RequiredPermission() PermissionLevel { return LevelNormal }
func (c *menuCommand) Help() string                        { return c.help }

func (c *menuCommand) Execute(ctx *Context) (*Response, error) {
	ctx.Notify(c.wait)
	return NewResponse(c.body), nil
}

// RegisterMenus adds the main menu and the six category menus
func RegisterMenus(registry *Registry) error {
	menus := []*menuCommand{
		{
			name: "اوامر",
			wait: "⏳ جاري تحضير قائمة فئات الأوامر...",
			help: "عرض فئات الأوامر المتاحة",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃       🌟 *فئات الأوامر المتاحة* 🌟        ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🟢 *اختر فئة لعرض الأوامر المتاحة:*

   ⚙️ *.اوامر_عامة* - الأوامر العامة والأساسية

   📱 *.اوامر_تنزيل* - أوامر تحميل الفيديوهات

   👑 *.اوامر_ادمن* - أوامر المشرفين

   💬 *.اوامر_حوار* - الردود التلقائية

   🎬 *.اوامر_وسائط* - أوامر الوسائط المتعددة

   🎮 *.اوامر_العاب* - الألعاب والترفيه

💡 *اكتب أحد الأوامر أعلاه لعرض القائمة التفصيلية*
`,
		},
		{
			name: "اوامر_تنزيل",
			wait: "⏳ جاري تحضير قائمة أوامر التنزيل...",
			help: "عرض أوامر تنزيل الوسائط",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃       📥 *أوامر تنزيل الوسائط* 📥        ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

📱 *تنزيل من وسائل التواصل الاجتماعي*

   🔵 *فيسبوك*
   └─ *.فيس [رابط الفيديو]*
      مثال: .فيس https://www.facebook.com/watch?v=...

   🔴 *يوتيوب*
   └─ *.يوتيوب [رابط الفيديو]*
      مثال: .يوتيوب https://youtu.be/...

   🟣 *انستجرام*
   └─ *.انستا [رابط الفيديو]*
      مثال: .انستا https://www.instagram.com/p/...

💡 *ملاحظات*
   • قد يستغرق التنزيل وقتًا حسب حجم الفيديو
   • في حالة فشل التنزيل، جرب مرة أخرى أو تأكد من صحة الرابط

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
		{
			name: "اوامر_ادمن",
			wait: "⏳ جاري تحضير قائمة أوامر المشرفين...",
			help: "عرض أوامر المشرفين",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃        👑 *أوامر المشرفين* 👑          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🛠️ *إدارة الأعضاء*
   ├─ *.ضيف [رقم الهاتف]* - إضافة عضو للمجموعة
   │   مثال: .ضيف 201234567890
   │
   └─ *.طرد [رقم الهاتف]* - طرد عضو من المجموعة
       مثال: .طرد 201234567890

📢 *التواصل*
   └─ *.منشن* - منشن لجميع أعضاء المجموعة

📊 *الإحصائيات*
   ├─ *.المجموعة* - عرض معلومات المجموعة
   └─ *.المتفاعلين* - عرض قائمة الأعضاء الأكثر تفاعلاً

⚠️ *ملاحظات هامة*
   • هذه الأوامر متاحة فقط للمشرفين
   • يجب أن يكون البوت مشرفًا لتنفيذ بعض هذه الأوامر

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
		{
			name: "اوامر_حوار",
			wait: "⏳ جاري تحضير قائمة الردود التلقائية...",
			help: "عرض الردود التلقائية",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃       💬 *الردود التلقائية* 💬          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🤖 *البوت يرد تلقائيًا على هذه الكلمات:*

   • *اهلا* - 👋 أهلاً وسهلاً!

   • *مين* - 👋 انا بوت ذكاء اصطناعي لمساعده صاحب الرقم

   • *مرحبا* - 😊 مرحبًا! كيف يمكنني مساعدتك؟

   • *كيف حالك* - أنا بخير، شكرًا لسؤالك! 😊 وأنت؟

   • *من انتم* - نحن فريق one Team هنا لدعمك في اي وقت

   • *one team* - نحن شركه او مؤسسه لدعم المتعلمين او الخريجين

   • *خاص* - سيتم التواصل معك في اقرب وقت الرجاء الأنتظار

💡 *ملاحظة:* يمكنك استخدام هذه الكلمات في أي وقت للتفاعل مع البوت

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
		{
			name: "اوامر_وسائط",
			wait: "⏳ جاري تحضير قائمة أوامر الوسائط...",
			help: "عرض أوامر الوسائط المتعددة",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃       🎬 *أوامر الوسائط المتعددة* 🎬      ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🖼️ *الصور والملصقات*

   • *التحويل إلى ملصق*
   └─ أرسل صورة مع تعليق *.ملصق*
      لتحويل الصورة إلى ملصق

   • *التحويل من ملصق إلى صورة*
   └─ أعد توجيه ملصق مع إضافة كلمة *.صورة*
      لتحويل الملصق إلى صورة

   • *البحث عن صور*
   └─ *.صورة [كلمة البحث]*
      مثال: .صورة طبيعة

🔊 *الصوتيات*
   └─ *.صوت [نص]*
      مثال: .صوت مرحبا بكم في المجموعة

💡 *ملاحظات مفيدة*
   • يمكنك استخدام هذه الأوامر في المجموعات أو الدردشات الخاصة
   • للحصول على أفضل النتائج، استخدم صورًا واضحة للتحويل إلى ملصقات

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
		{
			name: "اوامر_عامة",
			wait: "⏳ جاري تحضير قائمة الأوامر العامة...",
			help: "عرض الأوامر العامة",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃         ⚙️ *الأوامر العامة* ⚙️          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🕒 *الوقت والمعلومات*
   └─ *.وقت* - معرفة الوقت الحالي

📊 *إحصائيات ومعلومات*
   ├─ *.رسائلي* - عرض عدد رسائلك
   ├─ *.المجموعة* - معلومات المجموعة الحالية
   └─ *.المتفاعلين* - أكثر الأعضاء تفاعلاً

🤖 *استعلامات ومعلومات*
   └─ *.بوت [سؤالك]* - اسأل البوت أي سؤال
       مثال: .بوت ما هي مصر؟

🔍 *أدوات مفيدة*
   ├─ *.حكمه* - إرسال حكمة عشوائية
   ├─ *.الصلاة* - مواقيت الصلاة
   └─ *.اقتباس* - اقتباس عشوائي

🔊 *الأوامر النصية*
   ├─ *.كرر [عدد] [نص]* - تكرار رسائل منفصلة
   │   مثال: .كرر 3 مرحباً
   │
   └─ *.كرر_سطر [عدد] [نص]* - تكرار في رسالة واحدة
       مثال: .كرر_سطر 5 مرحباً

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
		{
			name: "اوامر_العاب",
			wait: "⏳ جاري تحضير قائمة ألعاب البوت...",
			help: "عرض أوامر الألعاب",
			body: `
┏━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┓
┃         🎮 *أوامر الألعاب* 🎮          ┃
┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛

🎲 *الألعاب المتاحة*

   🎯 *لعبة إكس أو (XO)*
   ├─ *.xo* - عرض قائمة خيارات اللعب
   ├─ *.xo @[اسم_الشخص]* - بدء لعبة مع شخص محدد
   ├─ *.xo عام* - بدء لعبة مفتوحة للجميع
   ├─ *.xo [رقم]* - وضع علامة في المربع المحدد
   │   مثال: .xo 4
   │
   └─ *.الغاء* - إلغاء اللعبة الحالية

🧠 *أسئلة وثقافة*
   ├─ *.سؤال* - طرح سؤال ثقافي للمشاركين
   ├─ *.الغاء_سؤال* - إلغاء السؤال الحالي
   │
   └─ *.ثقافة* - عرض معلومات عن دول مختلفة
       (اختر رقم الدولة بعد ظهور القائمة)

💡 *ملاحظة:* للإجابة على الأسئلة، اكتب رقم الإجابة مع منشن للبوت
      مثال: @بوت 2

🔙 *للعودة إلى القائمة الرئيسية، اكتب* .اوامر
`,
		},
	}

	for _, menu := range menus {
		if err := registry.Register(menu); err != nil {
			return err
		}
	}
	return registry.RegisterAlias("ادمنز", "اوامر_ادمن")
}
