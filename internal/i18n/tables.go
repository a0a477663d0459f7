package i18n

// Translation tables. Keys are grouped by the screen area that uses them;
// both languages must list the same keys.
var tables = map[string]map[string]string{
	LangArabic: {
		// shipment statuses
		"status.active":    "نشطة",
		"status.completed": "مكتملة",
		"status.cancelled": "ملغية",
		"status.pending":   "قيد الانتظار",

		// shipment categories
		"category.documents":     "مستندات",
		"category.small_package": "طرد صغير",
		"category.large_package": "طرد كبير",
		"category.furniture":     "أثاث",
		"category.electronics":   "أجهزة",
		"category.other":         "أخرى",

		// user roles
		"role.sender":  "مرسل",
		"role.carrier": "ناقل",
		"role.both":    "مرسل وناقل",
		"role.admin":   "مسؤول",

		// overview stats
		"stats.total_shipments":  "إجمالي الشحنات",
		"stats.active_shipments": "الشحنات النشطة",
		"stats.average_rating":   "متوسط التقييم",
		"stats.total_donations":  "إجمالي التبرعات",
		"stats.monthly_series":   "عدد الشحنات",
		"currency":               "ريال",

		// list states: loading is not empty, and empty is not "nothing matched"
		"shipments.loading":     "جاري تحميل الشحنات...",
		"shipments.empty":       "لا توجد شحنات حتى الآن",
		"shipments.empty_hint":  "أنشئ أول شحنة لك وابدأ في استخدام المنصة",
		"shipments.no_results":  "لا توجد نتائج",
		"offers.loading":        "جاري تحميل العروض...",
		"offers.empty":          "لا توجد عروض حتى الآن",
		"offers.empty_hint":     "سيظهر هنا العروض المقدمة على شحناتك",
		"notifications.loading": "جاري تحميل الإشعارات...",
		"notifications.empty":   "لا توجد إشعارات جديدة",

		// actions
		"action.view":      "عرض",
		"action.track":     "تتبع",
		"action.accept":    "قبول",
		"action.negotiate": "تفاوض",
		"action.reject":    "رفض",
		"action.mark_read": "تمت القراءة",
		"action.create":    "إنشاء شحنة",

		// section titles
		"section.overview":      "نظرة عامة",
		"section.shipments":     "شحناتي",
		"section.offers":        "العروض",
		"section.notifications": "الإشعارات",
		"section.users":         "إدارة المستخدمين",
		"section.donations":     "التبرعات الطوعية",
		"section.admin":         "لوحة الإدارة",
		"section.landing":       "منصة الشحن السريع",

		// admin table headers
		"admin.name":       "الاسم",
		"admin.email":      "البريد الإلكتروني",
		"admin.role":       "النوع",
		"admin.rating":     "التقييم",
		"admin.registered": "تاريخ التسجيل",
		"admin.no_users":   "لا يوجد مستخدمون حتى الآن",
		"admin.sender":     "المرسل",
		"admin.route":      "المسار",
		"admin.status":     "الحالة",
		"admin.total_users":     "إجمالي المستخدمين",
		"admin.total_carriers":  "إجمالي الناقلين",
		"admin.total_shipments": "إجمالي الشحنات",
		"admin.total_donations": "إجمالي التبرعات",

		// landing counters
		"landing.counter_loading":   "–",
		"landing.shipments_moved":   "شحنة تم نقلها",
		"landing.carriers_on_board": "ناقل مسجل",

		// alerts
		"alert.shipment_created":  "تم إنشاء الشحنة بنجاح",
		"alert.offer_accepted":    "تم قبول العرض بنجاح",
		"alert.offer_rejected":    "تم رفض العرض",
		"alert.profile_updated":   "تم تحديث الملف الشخصي بنجاح",
		"alert.carrier_registered": "تم تسجيلك كناقل بنجاح، ستتم مراجعة طلبك قريباً",
		"alert.network_error":     "تعذر الاتصال بالخادم، تظهر آخر بيانات معروفة",
		"alert.load_failed":       "فشل في تحميل البيانات",
		"alert.auth_required":     "يرجى تسجيل الدخول أولاً",
		"alert.not_found":         "السجل المطلوب لم يعد موجوداً",
		"alert.validation_failed": "يرجى التحقق من الحقول المدخلة",
		"alert.offer_settled":     "تم البت في هذا العرض مسبقاً",
		"alert.offer_sent":        "تم إرسال عرضك بنجاح",
		"alert.negotiate_hint":    "يمكنك التفاوض مع الناقل عبر المحادثة",

		// notification records written by the event bridge
		"notif.shipment_created_title":   "تم إنشاء شحنتك",
		"notif.shipment_created_message": "شحنتك قيد المراجعة الآن",
		"notif.new_offer_title":          "عرض جديد",
		"notif.new_offer_message":        "قدم عرضاً على شحنتك",
		"notif.offer_accepted_title":     "تم قبول عرضك",
		"notif.offer_accepted_message":   "وافق المرسل على عرضك، يمكنك بدء النقل",
		"notif.offer_rejected_title":     "تم رفض عرضك",
		"notif.offer_rejected_message":   "للأسف لم يتم قبول عرضك هذه المرة",

		"guest": "زائر",
	},
	LangEnglish: {
		"status.active":    "Active",
		"status.completed": "Completed",
		"status.cancelled": "Cancelled",
		"status.pending":   "Pending",

		"category.documents":     "Documents",
		"category.small_package": "Small package",
		"category.large_package": "Large package",
		"category.furniture":     "Furniture",
		"category.electronics":   "Electronics",
		"category.other":         "Other",

		"role.sender":  "Sender",
		"role.carrier": "Carrier",
		"role.both":    "Sender & carrier",
		"role.admin":   "Administrator",

		"stats.total_shipments":  "Total shipments",
		"stats.active_shipments": "Active shipments",
		"stats.average_rating":   "Average rating",
		"stats.total_donations":  "Total donations",
		"stats.monthly_series":   "Shipments per month",
		"currency":               "SAR",

		"shipments.loading":     "Loading shipments...",
		"shipments.empty":       "No shipments yet",
		"shipments.empty_hint":  "Create your first shipment to get started",
		"shipments.no_results":  "No results",
		"offers.loading":        "Loading offers...",
		"offers.empty":          "No offers yet",
		"offers.empty_hint":     "Offers on your shipments will appear here",
		"notifications.loading": "Loading notifications...",
		"notifications.empty":   "No new notifications",

		"action.view":      "View",
		"action.track":     "Track",
		"action.accept":    "Accept",
		"action.negotiate": "Negotiate",
		"action.reject":    "Reject",
		"action.mark_read": "Mark read",
		"action.create":    "Create shipment",

		"section.overview":      "Overview",
		"section.shipments":     "My shipments",
		"section.offers":        "Offers",
		"section.notifications": "Notifications",
		"section.users":         "User management",
		"section.donations":     "Voluntary donations",
		"section.admin":         "Admin panel",
		"section.landing":       "Fast Shipment World",

		"admin.name":       "Name",
		"admin.email":      "Email",
		"admin.role":       "Role",
		"admin.rating":     "Rating",
		"admin.registered": "Registered",
		"admin.no_users":   "No users yet",
		"admin.sender":     "Sender",
		"admin.route":      "Route",
		"admin.status":     "Status",
		"admin.total_users":     "Total users",
		"admin.total_carriers":  "Total carriers",
		"admin.total_shipments": "Total shipments",
		"admin.total_donations": "Total donations",

		"landing.counter_loading":   "–",
		"landing.shipments_moved":   "shipments moved",
		"landing.carriers_on_board": "registered carriers",

		"alert.shipment_created":  "Shipment created successfully",
		"alert.offer_accepted":    "Offer accepted",
		"alert.offer_rejected":    "Offer rejected",
		"alert.profile_updated":   "Profile updated successfully",
		"alert.carrier_registered": "You are registered as a carrier, your application will be reviewed soon",
		"alert.network_error":     "Cannot reach the server, showing last known data",
		"alert.load_failed":       "Failed to load data",
		"alert.auth_required":     "Please sign in first",
		"alert.not_found":         "The requested record no longer exists",
		"alert.validation_failed": "Please check the entered fields",
		"alert.offer_settled":     "This offer has already been settled",
		"alert.offer_sent":        "Your offer has been sent",
		"alert.negotiate_hint":    "You can negotiate with the carrier in chat",

		"notif.shipment_created_title":   "Shipment created",
		"notif.shipment_created_message": "Your shipment is now under review",
		"notif.new_offer_title":          "New offer",
		"notif.new_offer_message":        "made an offer on your shipment",
		"notif.offer_accepted_title":     "Offer accepted",
		"notif.offer_accepted_message":   "The sender accepted your offer, you can start the delivery",
		"notif.offer_rejected_title":     "Offer rejected",
		"notif.offer_rejected_message":   "Unfortunately your offer was not accepted this time",

		"guest": "Guest",
	},
}
